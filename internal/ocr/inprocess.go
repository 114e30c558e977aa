package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gardar/ocrchestra/pkg/pdfocr"
	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// inProcess is the preferred tier: rasterize every page with MuPDF, OCR each
// image with the Tesseract binding, then assemble a new PDF that lays the
// recognized text under the page images. Rebuilding from the rasterized
// pages is what makes this a forced re-OCR: any prior text layer is
// discarded.
type inProcess struct {
	dpi    float64
	logger *slog.Logger

	// recognize defaults to recognizePage; tests substitute it.
	recognize func(image []byte, langs []string) (pageResult, error)
}

func (p *inProcess) name() string { return "in-process" }

type pageResult struct {
	hocr string
	text string
}

func (p *inProcess) run(ctx context.Context, src, dst string, opts Options) error {
	doc, err := fitz.New(src)
	if err != nil {
		return fmt.Errorf("open source pdf: %w", err)
	}
	defer func() {
		_ = doc.Close()
	}()

	n := doc.NumPage()
	if n <= 0 {
		return fmt.Errorf("source pdf has no pages")
	}

	// Rasterization stays sequential (MuPDF documents are not safe for
	// concurrent use); recognition fans out below.
	images := make([][]byte, n)
	for i := 0; i < n; i++ {
		img, err := doc.ImageDPI(i, p.dpi)
		if err != nil {
			return fmt.Errorf("render page %d: %w", i+1, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encode page %d: %w", i+1, err)
		}
		images[i] = buf.Bytes()
	}

	results := make([]pageResult, n)
	if err := p.recognizePages(ctx, images, opts, results); err != nil {
		return err
	}

	hocrPages := make([]string, n)
	texts := make([]string, n)
	for i, r := range results {
		hocrPages[i] = r.hocr
		texts[i] = r.text
	}

	assembled, err := pdfocr.AssembleWithOCR(mergeHOCRPages(hocrPages), images, pdfocr.OCRConfig{
		Force:     true,
		StartPage: 1,
		Font:      pdfocr.DefaultFont,
	})
	if err != nil {
		return fmt.Errorf("assemble searchable pdf: %w", err)
	}
	if err := os.WriteFile(dst, assembled, 0o644); err != nil {
		return fmt.Errorf("write output pdf: %w", err)
	}

	if opts.SidecarPath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.SidecarPath), 0o755); err != nil {
			return fmt.Errorf("create sidecar directory: %w", err)
		}
		content := strings.TrimSpace(strings.Join(texts, "\n\f\n"))
		if err := os.WriteFile(opts.SidecarPath, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write sidecar: %w", err)
		}
	}
	return nil
}

// recognizePages OCRs the rendered pages with at most opts.Jobs workers,
// filling results by page index so output order stays stable. It returns
// only after every spawned worker has finished, cancellation included, so
// no worker writes into results after the caller has moved on.
func (p *inProcess) recognizePages(ctx context.Context, images [][]byte, opts Options, results []pageResult) error {
	recognize := p.recognize
	if recognize == nil {
		recognize = recognizePage
	}
	langs := splitLanguages(opts.Language)
	sem := make(chan struct{}, opts.Jobs)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := range images {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := recognize(images[i], langs)
			mu.Lock()
			defer mu.Unlock()
			if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("ocr page %d: %w", i+1, err)
				return
			}
			results[i] = res
		}(i)
	}
	wg.Wait()

	if firstErr == nil {
		firstErr = ctx.Err()
	}
	return firstErr
}

func recognizePage(image []byte, langs []string) (pageResult, error) {
	client := gosseract.NewClient()
	defer func() {
		_ = client.Close()
	}()

	if len(langs) > 0 {
		if err := client.SetLanguage(langs...); err != nil {
			return pageResult{}, fmt.Errorf("set language: %w", err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return pageResult{}, fmt.Errorf("set image: %w", err)
	}

	hocr, err := client.HOCRText()
	if err != nil {
		return pageResult{}, fmt.Errorf("hocr: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return pageResult{}, fmt.Errorf("text: %w", err)
	}
	return pageResult{hocr: hocr, text: strings.TrimSpace(text)}, nil
}

// splitLanguages turns a Tesseract language spec ("jpn+eng") into the
// binding's variadic form.
func splitLanguages(spec string) []string {
	var langs []string
	for _, l := range strings.Split(spec, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}
