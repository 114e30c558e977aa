// Package pdftext extracts plain text from PDFs and persists .txt
// renditions. Extraction performs no OCR: a document without a text layer
// yields nothing here, and the recognized-text sidecar (when one exists)
// covers that case.
package pdftext

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/minase-lab/pdfshelf/internal/pdfdoc"
)

// Extractor pulls text out of PDFs with a sidecar fallback.
type Extractor struct {
	open   pdfdoc.Opener
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{open: pdfdoc.Open, logger: logger}
}

// Extract returns the text of every page of path in order, joined with
// newlines and trimmed. When direct extraction yields nothing (including a
// document that cannot be opened) and sidecarPath names an existing file,
// its contents are used instead. Extract never fails: the worst outcome is
// an empty string.
func (e *Extractor) Extract(path, sidecarPath string) string {
	text := e.extractPages(path)
	if text == "" && sidecarPath != "" {
		text = readSidecar(sidecarPath)
	}
	return text
}

func (e *Extractor) extractPages(path string) string {
	doc, err := e.open(path)
	if err != nil {
		e.logger.Debug("extract: open failed", "path", path, "error", err)
		return ""
	}
	defer func() {
		_ = doc.Close()
	}()

	parts := make([]string, 0, doc.NumPages())
	for i := 0; i < doc.NumPages(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, text)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// readSidecar reads a recognized-text sidecar, best effort: missing file or
// invalid UTF-8 bytes degrade rather than fail.
func readSidecar(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(raw), ""))
}

// WriteTextFile writes content as UTF-8 to path, creating parent
// directories and overwriting any existing file.
func WriteTextFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
