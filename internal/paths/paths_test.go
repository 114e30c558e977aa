package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minase-lab/pdfshelf/internal/common"
)

func TestDeriveConvertedPath(t *testing.T) {
	src := filepath.Join("/data/pdf", "2024", "a", "report.pdf")

	got := DeriveConvertedPath(src, "/data/pdf", "/data/converted_pdf")
	want := filepath.Join("/data/converted_pdf", "2024", "a", "report_converted.pdf")
	assert.Equal(t, want, got)

	// Pure function: applying it twice yields the same path.
	assert.Equal(t, got, DeriveConvertedPath(src, "/data/pdf", "/data/converted_pdf"))
}

func TestDeriveConvertedPathOutsideRoot(t *testing.T) {
	got := DeriveConvertedPath("/elsewhere/scan.pdf", "/data/pdf", "/data/converted_pdf")
	assert.Equal(t, filepath.Join("/data/converted_pdf", "scan_converted.pdf"), got)
}

func TestDeriveTextPathRoundTrip(t *testing.T) {
	pdfRoot := "/data/pdf"
	convRoot := "/data/converted_pdf"
	textRoot := "/data/text"

	src := filepath.Join(pdfRoot, "2024", "a", "report.pdf")
	conv := DeriveConvertedPath(src, pdfRoot, convRoot)

	got := DeriveTextPath(conv, pdfRoot, convRoot, textRoot)
	assert.Equal(t, filepath.Join(textRoot, "2024", "a", "report_converted.txt"), got)

	// The original resolves through the pdf root.
	assert.Equal(t,
		filepath.Join(textRoot, "2024", "a", "report.txt"),
		DeriveTextPath(src, pdfRoot, convRoot, textRoot))
}

func TestDeriveTextPathFallsBackFlat(t *testing.T) {
	got := DeriveTextPath("/somewhere/else/doc.pdf", "/data/pdf", "/data/converted_pdf", "/data/text")
	assert.Equal(t, filepath.Join("/data/text", "doc.txt"), got)
}

func TestRelativeName(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "b.pdf"), RelativeName("/root/a/b.pdf", "/root"))
	assert.Equal(t, "b.pdf", RelativeName("/outside/a/b.pdf", "/root/sub"))
	assert.Equal(t, "b.pdf", RelativeName("/root/../x/b.pdf", "/root"))
}

func TestSidecarPath(t *testing.T) {
	assert.Equal(t, "/x/report_converted.sidecar.txt", SidecarPath("/x/report_converted.pdf"))
}

func TestEnumeratePDFs(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "b", "two.pdf"))
	mustWrite(t, filepath.Join(dir, "a", "one.PDF"))
	mustWrite(t, filepath.Join(dir, "a", "skip.txt"))

	files := EnumeratePDFs(dir)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a", "one.PDF"), files[0])
	assert.Equal(t, filepath.Join(dir, "b", "two.pdf"), files[1])
}

func TestEnumeratePDFsMissingRoot(t *testing.T) {
	assert.Empty(t, EnumeratePDFs(filepath.Join(t.TempDir(), "nope")))
}

func TestFilterByName(t *testing.T) {
	files := []string{"/r/2024/Annual Report.pdf", "/r/2024/invoice.pdf"}
	assert.Equal(t, files, FilterByName(files, ""))
	assert.Equal(t, files[:1], FilterByName(files, "REPORT"))
	assert.Empty(t, FilterByName(files, "missing"))
}

func TestFilterByYears(t *testing.T) {
	files := []string{
		"/r/2024/a.pdf",
		"/r/2025/sub/b.pdf",
		"/r/misc/c.pdf",
	}
	got := FilterByYears(files, "/r", []string{"2024", " 2025 "})
	assert.Equal(t, files[:2], got)

	assert.Equal(t, files, FilterByYears(files, "/r", nil))
}

func TestResolveDefaultsAndSpecs(t *testing.T) {
	appRoot := t.TempDir()
	mount := t.TempDir()

	s := &common.Settings{
		Location: "Office",
		Mounts:   map[string]string{"ssd": mount},
		Locations: map[string]common.RootSpec{
			"Office": {
				PDFRoot:       "mount:ssd/pdf",
				ConvertedRoot: "project:out/converted",
			},
		},
	}
	roots := Resolve(appRoot, s, nil)

	assert.Equal(t, filepath.Join(mount, "pdf"), roots.PDF)
	assert.Equal(t, filepath.Join(appRoot, "out", "converted"), roots.Converted)
	assert.Equal(t, filepath.Join(appRoot, "data", "text"), roots.Text)
	assert.Equal(t, filepath.Join(appRoot, "data", "library"), roots.Library)

	// Roots get created when possible.
	for _, r := range []string{roots.PDF, roots.Converted, roots.Text, roots.Library} {
		fi, err := os.Stat(r)
		require.NoError(t, err)
		assert.True(t, fi.IsDir())
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
}
