package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/minase-lab/pdfshelf/constants"
	"github.com/minase-lab/pdfshelf/internal/common"
	"github.com/minase-lab/pdfshelf/internal/paths"
	"github.com/minase-lab/pdfshelf/internal/pdftext"
)

// ExportSummary aggregates one text-export run.
type ExportSummary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// extractor is the view Exporter needs of pdftext.
type extractor interface {
	Extract(path, sidecarPath string) string
}

// Exporter persists .txt renditions for a collection of PDFs.
type Exporter struct {
	extract extractor
	logger  *slog.Logger
}

func NewExporter(e extractor, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{extract: e, logger: logger}
}

// Export walks files in order. For each, the converted output is preferred
// over the original when it exists on disk — checked at call time, not from
// any prior plan, so the exporter runs standalone. An existing target .txt
// is never rewritten. Empty extraction counts as a failure; nothing is
// written for it.
func (e *Exporter) Export(files []string, roots paths.StorageRoots) (ExportSummary, error) {
	if _, err := os.Stat(roots.PDF); err != nil {
		return ExportSummary{}, common.NewAppError("SOURCE_ROOT", fmt.Sprintf("source root %q", roots.PDF), err)
	}

	var s ExportSummary
	for _, f := range files {
		src := f
		stem := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		if !constants.HasConvertedStem(stem) {
			if conv := paths.DeriveConvertedPath(f, roots.PDF, roots.Converted); fileExists(conv) {
				src = conv
			}
		}

		target := paths.DeriveTextPath(src, roots.PDF, roots.Converted, roots.Text)
		if fileExists(target) {
			s.Skipped++
			continue
		}

		content := e.extract.Extract(src, paths.SidecarPath(src))
		if content == "" {
			s.Failed++
			e.logger.Debug("no text extracted", "src", src)
			continue
		}
		if err := pdftext.WriteTextFile(target, content); err != nil {
			s.Failed++
			e.logger.Error("write text failed", "target", target, "error", err)
			continue
		}
		s.Succeeded++
	}
	return s, nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
