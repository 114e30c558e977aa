package ocr

import (
	"os/exec"

	"github.com/otiai10/gosseract/v2"
)

// Capabilities reports what OCR machinery this host offers. Diagnostic
// display only: Run still walks every tier regardless of what is reported
// here.
type Capabilities struct {
	InProcess   bool // Tesseract binding usable (language data present)
	OCRmyPDFCLI bool // ocrmypdf executable on PATH
	Tesseract   bool // tesseract executable on PATH
}

// EnvCheck probes the host.
func EnvCheck() Capabilities {
	var caps Capabilities

	if langs, err := gosseract.GetAvailableLanguages(); err == nil && len(langs) > 0 {
		caps.InProcess = true
	}
	if _, err := exec.LookPath("ocrmypdf"); err == nil {
		caps.OCRmyPDFCLI = true
	}
	if _, err := exec.LookPath("tesseract"); err == nil {
		caps.Tesseract = true
	}
	return caps
}
