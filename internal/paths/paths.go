// Package paths owns the storage layout: named roots resolved from the
// settings document and the deterministic naming rules for converted PDFs,
// sidecars and extracted text. All derivations are pure functions of their
// inputs so batch planning stays reproducible.
package paths

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minase-lab/pdfshelf/constants"
	"github.com/minase-lab/pdfshelf/internal/common"
)

// StorageRoots holds the four absolute directory paths the shelf works
// against. Constructed once per invocation and immutable afterwards.
type StorageRoots struct {
	PDF       string // original PDF input tree
	Converted string // OCR conversion outputs
	Text      string // extracted plain-text renditions
	Library   string // catalog workbook location
}

// Resolve builds StorageRoots from the settings document. Unset specs fall
// back to fixed defaults under <appRoot>/data. Each root is created if
// possible; creation failures (read-only mounts) are logged and tolerated —
// the path is still recorded, later writes against it fail individually.
func Resolve(appRoot string, s *common.Settings, logger *slog.Logger) StorageRoots {
	if logger == nil {
		logger = slog.Default()
	}
	dataDir := filepath.Join(appRoot, "data")
	spec := s.CurrentSpec()

	roots := StorageRoots{
		PDF:       common.ResolveSpec(spec.PDFRoot, appRoot, s.Mounts, filepath.Join(dataDir, "pdf")),
		Converted: common.ResolveSpec(spec.ConvertedRoot, appRoot, s.Mounts, filepath.Join(dataDir, "converted_pdf")),
		Text:      common.ResolveSpec(spec.TextRoot, appRoot, s.Mounts, filepath.Join(dataDir, "text")),
		Library:   common.ResolveSpec(spec.LibraryRoot, appRoot, s.Mounts, filepath.Join(dataDir, "library")),
	}

	for _, r := range []string{roots.PDF, roots.Converted, roots.Text, roots.Library} {
		if err := os.MkdirAll(r, 0o755); err != nil {
			logger.Debug("root not creatable", "path", r, "error", err)
		}
	}
	return roots
}

// relUnder returns path relative to base, and whether path actually lives
// under base.
func relUnder(path, base string) (string, bool) {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(path))
	if err != nil {
		return "", false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// RelativeName returns path relative to base, or just the file name when
// path is not inside base. It never fails.
func RelativeName(path, base string) string {
	if rel, ok := relUnder(path, base); ok {
		return rel
	}
	return filepath.Base(path)
}

// DeriveConvertedPath computes the OCR output location for src:
// dstRoot/<rel>/<stem>_converted.pdf, where <rel> is src's subpath under
// srcRoot. A src outside srcRoot lands directly under dstRoot.
func DeriveConvertedPath(src, srcRoot, dstRoot string) string {
	rel, ok := relUnder(src, srcRoot)
	if !ok {
		rel = filepath.Base(src)
	}
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	out := filepath.Join(dstRoot, rel)
	return filepath.Join(filepath.Dir(out), stem+constants.ConvertedStemSuffix+".pdf")
}

// DeriveTextPath computes the persisted .txt location for sourcePdf. The
// relative subpath is taken from pdfRoot first, then convertedRoot; a source
// under neither lands flat beneath textRoot. This order decides where every
// future lookup for the file's text searches first, so it must not change.
func DeriveTextPath(sourcePdf, pdfRoot, convertedRoot, textRoot string) string {
	var base string
	if rel, ok := relUnder(sourcePdf, pdfRoot); ok {
		base = filepath.Join(textRoot, rel)
	} else if rel, ok := relUnder(sourcePdf, convertedRoot); ok {
		base = filepath.Join(textRoot, rel)
	} else {
		base = filepath.Join(textRoot, filepath.Base(sourcePdf))
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + constants.TextExt
}

// SidecarPath names the recognized-text sidecar for a PDF: the ".pdf"
// extension replaced with ".sidecar.txt".
func SidecarPath(pdf string) string {
	return strings.TrimSuffix(pdf, filepath.Ext(pdf)) + constants.SidecarSuffix
}

// EnumeratePDFs lists every .pdf under root recursively, full-path
// lexicographic order. A missing root yields an empty slice; unreadable
// entries are skipped rather than aborting the walk.
func EnumeratePDFs(root string) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // continue walking
		}
		if d.IsDir() {
			return nil
		}
		if constants.IsPDF(filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files
}

// FilterByName keeps files whose base name contains substr,
// case-insensitively. An empty substr keeps everything.
func FilterByName(files []string, substr string) []string {
	substr = strings.ToLower(strings.TrimSpace(substr))
	if substr == "" {
		return files
	}
	var out []string
	for _, f := range files {
		if strings.Contains(strings.ToLower(filepath.Base(f)), substr) {
			out = append(out, f)
		}
	}
	return out
}

// FilterByYears keeps files whose first two path elements under root contain
// one of the given year folder names (e.g. "2024"). An empty year set keeps
// everything.
func FilterByYears(files []string, root string, years []string) []string {
	set := map[string]struct{}{}
	for _, y := range years {
		if y = strings.TrimSpace(y); y != "" {
			set[y] = struct{}{}
		}
	}
	if len(set) == 0 {
		return files
	}
	var out []string
	for _, f := range files {
		parts := strings.Split(RelativeName(f, root), string(filepath.Separator))
		if len(parts) > 2 {
			parts = parts[:2]
		}
		for _, p := range parts {
			if _, ok := set[p]; ok {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
