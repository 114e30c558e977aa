// Package render produces page thumbnails for browsing.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/image/draw"
)

const (
	minScale = 0.5
	maxScale = 5.0
)

// Thumbnail renders the first page of the PDF at path and returns a PNG
// scaled to roughly widthPx pixels wide. The effective scale is clamped so
// tiny or enormous pages cannot produce degenerate output.
func Thumbnail(path string, widthPx int) ([]byte, error) {
	if widthPx <= 0 {
		widthPx = 240
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		_ = doc.Close()
	}()

	if doc.NumPage() <= 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	// 72 DPI renders at the page's natural point size.
	page, err := doc.ImageDPI(0, 72)
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}

	w := page.Bounds().Dx()
	if w <= 0 {
		w = 1
	}
	scale := float64(widthPx) / float64(w)
	if scale < minScale {
		scale = minScale
	}
	if scale > maxScale {
		scale = maxScale
	}

	dst := image.NewRGBA(image.Rect(0, 0,
		int(float64(page.Bounds().Dx())*scale),
		int(float64(page.Bounds().Dy())*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), page, page.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
