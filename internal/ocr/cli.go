package ocr

import (
	"context"
	"strconv"
	"strings"
)

// cliAttempt shells out to the ocrmypdf executable, mirroring the flag set
// the in-process tier applies: force re-OCR, deskew, clean, PDF output.
type cliAttempt struct {
	bin    string
	look   func(file string) (string, error)
	runner Runner
}

func (c *cliAttempt) name() string { return "ocrmypdf-cli" }

func (c *cliAttempt) run(ctx context.Context, src, dst string, opts Options) error {
	exe, err := c.look(c.bin)
	if err != nil {
		return &Error{Message: "ocrmypdf not found in PATH"}
	}

	stdout, stderr, err := c.runner.Run(ctx, exe, buildArgs(src, dst, opts)...)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			msg = strings.TrimSpace(string(stdout))
		}
		if msg == "" {
			msg = err.Error()
		}
		return &Error{Message: msg}
	}
	return nil
}

func buildArgs(src, dst string, opts Options) []string {
	args := []string{
		"--language", opts.Language,
		"--output-type", "pdf",
		"--deskew",
		"--clean",
		"--optimize", strconv.Itoa(opts.Optimize),
		"--jobs", strconv.Itoa(opts.Jobs),
		"--force-ocr",
	}
	if opts.RotatePages {
		args = append(args, "--rotate-pages")
	}
	if opts.SidecarPath != "" {
		args = append(args, "--sidecar", opts.SidecarPath)
	}
	return append(args, src, dst)
}
