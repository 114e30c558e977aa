package ocr

import (
	"fmt"
	"regexp"
	"strings"
)

// Tesseract emits one complete hOCR document per recognized image. The PDF
// assembler wants a single multi-page document, so we splice each per-page
// body together and renumber the page divs.

var (
	hocrBodyRe = regexp.MustCompile(`(?s)<body[^>]*>(.*)</body>`)
	hocrPageRe = regexp.MustCompile(`(<div[^>]*class=['"]ocr_page['"][^>]*id=['"])[^'"]*(['"])`)
)

const hocrHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
 <head>
  <title></title>
  <meta http-equiv="Content-Type" content="text/html;charset=utf-8"/>
  <meta name="ocr-system" content="tesseract"/>
  <meta name="ocr-capabilities" content="ocr_page ocr_carea ocr_par ocr_line ocrx_word"/>
 </head>
 <body>
`

// mergeHOCRPages combines per-page hOCR documents into one, pages in input
// order. Pages whose body cannot be located contribute an empty page div so
// page numbering stays aligned with the rendered images.
func mergeHOCRPages(pages []string) []byte {
	var b strings.Builder
	b.WriteString(hocrHeader)
	for i, page := range pages {
		body := page
		if m := hocrBodyRe.FindStringSubmatch(page); m != nil {
			body = m[1]
		}
		body = hocrPageRe.ReplaceAllString(body, fmt.Sprintf(`${1}page_%d${2}`, i+1))
		if !strings.Contains(body, "ocr_page") {
			body = fmt.Sprintf(`<div class='ocr_page' id='page_%d'></div>`, i+1)
		}
		b.WriteString(strings.TrimSpace(body))
		b.WriteString("\n")
	}
	b.WriteString(" </body>\n</html>\n")
	return []byte(b.String())
}
