// Package pdfdoc is the narrow seam between this module and the PDF engine
// (MuPDF via go-fitz). Callers depend on the Document interface so tests can
// substitute fixtures without native bindings.
package pdfdoc

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// Document is the read surface the shelf needs from a PDF.
type Document interface {
	NumPages() int
	// PageText returns the raw text of the zero-based page i.
	PageText(i int) (string, error)
	Close() error
}

// Opener opens a document by path.
type Opener func(path string) (Document, error)

// Open opens path with the MuPDF engine.
func Open(path string) (Document, error) {
	d, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %q: %w", path, err)
	}
	return &fitzDoc{d: d}, nil
}

type fitzDoc struct {
	d *fitz.Document
}

func (f *fitzDoc) NumPages() int { return f.d.NumPage() }

func (f *fitzDoc) PageText(i int) (string, error) { return f.d.Text(i) }

func (f *fitzDoc) Close() error { return f.d.Close() }
