// Package ocr converts image PDFs into searchable text-layer PDFs. The
// engine carries an ordered list of execution attempts — an in-process
// Tesseract pipeline first, then the ocrmypdf command line — and surfaces a
// failure only when every attempt fails. The command-line tier exists
// because the native binding can be unusable in some packaging/environment
// configurations while an installed CLI keeps working.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// Options is the per-conversion configuration bundle, passed by value.
type Options struct {
	Language    string // Tesseract language spec, e.g. "jpn+eng"
	Optimize    int    // output compression level 0..3
	Jobs        int    // parallelism forwarded to the engine's own job pool
	RotatePages bool   // automatic page-rotation correction
	SidecarPath string // recognized text written here when non-empty
}

func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = "jpn+eng"
	}
	if o.Optimize < 0 || o.Optimize > 3 {
		o.Optimize = 1
	}
	if o.Jobs < 1 {
		o.Jobs = 2
	}
	return o
}

// Error is the only error this package surfaces: both execution tiers
// failed. Message carries the last tier's human-readable cause (captured
// stderr/stdout for the subprocess tier).
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ocr: %s", e.Message)
}

// attempt is one execution strategy. The first attempt to succeed wins;
// only the last failure's message reaches the caller.
type attempt interface {
	name() string
	run(ctx context.Context, src, dst string, opts Options) error
}

// Config configures the engine's external collaborators.
type Config struct {
	OCRmyPDF string  // binary name or absolute path; if empty -> "ocrmypdf"
	DPI      float64 // rasterization DPI for the in-process tier, default 300
}

// Engine runs OCR conversions. It writes dst (and the sidecar when
// requested) and never touches src.
type Engine struct {
	attempts []attempt
	logger   *slog.Logger
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.OCRmyPDF == "" {
		cfg.OCRmyPDF = "ocrmypdf"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Engine{
		attempts: []attempt{
			&inProcess{dpi: cfg.DPI, logger: logger},
			&cliAttempt{bin: cfg.OCRmyPDF, look: exec.LookPath, runner: execRunner{logger: logger}},
		},
		logger: logger,
	}
}

// Run converts src into the searchable PDF dst. It fails with *Error only
// when every tier fails.
func (e *Engine) Run(ctx context.Context, src, dst string, opts Options) error {
	opts = opts.withDefaults()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return &Error{Message: fmt.Sprintf("create output directory: %v", err)}
	}

	var lastErr error
	for _, a := range e.attempts {
		err := a.run(ctx, src, dst, opts)
		if err == nil {
			e.logger.Info("ocr done", "tier", a.name(), "src", src, "dst", dst)
			return nil
		}
		lastErr = err
		e.logger.Debug("ocr tier failed, falling back", "tier", a.name(), "src", src, "error", err)
	}

	if ocrErr, ok := lastErr.(*Error); ok {
		return ocrErr
	}
	return &Error{Message: lastErr.Error()}
}
