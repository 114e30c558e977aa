package constants

import "strings"

// PDFExt is the only extension the shelf manages.
const PDFExt = "pdf"

// ConvertedStemSuffix marks a PDF produced by the OCR conversion step:
// <stem>_converted.pdf. Inputs that already carry it are never re-planned.
const ConvertedStemSuffix = "_converted"

// SidecarSuffix replaces the ".pdf" extension of a converted output to name
// the OCR engine's recognized-text sidecar: <stem>_converted.sidecar.txt.
const SidecarSuffix = ".sidecar.txt"

// TextExt is the extension of persisted plain-text renditions.
const TextExt = ".txt"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDF reports whether extension ext names a PDF file.
func IsPDF(ext string) bool {
	return NormalizeExt(ext) == PDFExt
}

// HasConvertedStem reports whether stem (file name without extension) names
// a converted output.
func HasConvertedStem(stem string) bool {
	return strings.HasSuffix(stem, ConvertedStemSuffix)
}
