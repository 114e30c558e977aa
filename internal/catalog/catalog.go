// Package catalog reads the library's spreadsheet-based record catalog and
// answers keyword searches over it. Cells are handled as trimmed strings
// throughout — type inference would only make matching flaky.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/minase-lab/pdfshelf/internal/common"
)

// DefaultCandidates are probed in order under the library root before
// falling back to the first workbook found there.
var DefaultCandidates = []string{"library.xlsx", "catalog.xlsx"}

// Table is one parsed worksheet: a header row plus string-typed records.
type Table struct {
	Source  string
	Sheet   string
	Headers []string
	Rows    [][]string
}

// DefaultWorkbook picks the catalog workbook under libraryRoot.
func DefaultWorkbook(libraryRoot string) (string, error) {
	for _, name := range DefaultCandidates {
		p := filepath.Join(libraryRoot, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	matches, _ := filepath.Glob(filepath.Join(libraryRoot, "*.xlsx"))
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", fmt.Errorf("no workbook under %q: %w", libraryRoot, common.ErrNotFound)
	}
	return matches[0], nil
}

// Load opens the workbook and parses one sheet (the first when sheet is
// empty or unknown). It returns the table plus the workbook's sheet names.
func Load(path, sheet string) (*Table, []string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook %q has no sheets", path)
	}
	target := sheets[0]
	for _, s := range sheets {
		if s == sheet {
			target = s
			break
		}
	}

	raw, err := f.GetRows(target)
	if err != nil {
		return nil, sheets, fmt.Errorf("read sheet %q: %w", target, err)
	}

	t := &Table{Source: path, Sheet: target}
	if len(raw) > 0 {
		t.Headers = trimRow(raw[0])
		for _, row := range raw[1:] {
			row = trimRow(row)
			// GetRows drops trailing empty cells; keep rows rectangular.
			for len(row) < len(t.Headers) {
				row = append(row, "")
			}
			t.Rows = append(t.Rows, row)
		}
	}
	return t, sheets, nil
}

func trimRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

// Mode selects how multiple keywords combine.
type Mode string

const (
	ModeAnd Mode = "AND"
	ModeOr  Mode = "OR"
)

// Search returns the rows matching query: whitespace-separated keywords
// matched as substrings across every cell of a row, combined per mode. An
// empty query matches everything.
func (t *Table) Search(query string, mode Mode, caseSensitive bool) [][]string {
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return t.Rows
	}
	if !caseSensitive {
		for i := range keywords {
			keywords[i] = strings.ToLower(keywords[i])
		}
	}

	var out [][]string
	for _, row := range t.Rows {
		joined := strings.Join(row, "\x00")
		if !caseSensitive {
			joined = strings.ToLower(joined)
		}
		matched := 0
		for _, kw := range keywords {
			if strings.Contains(joined, kw) {
				matched++
			}
		}
		keep := matched == len(keywords)
		if mode == ModeOr {
			keep = matched > 0
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

// Column returns the index of header name, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}
