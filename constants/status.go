package constants

// TaskStatus is the canonical status of one conversion task inside a batch.
type TaskStatus string

// Stable values (they appear verbatim in batch plan output).
const (
	StatusUnconverted         TaskStatus = "UNCONVERTED"              // planned, destination absent
	StatusOutputExistsSkip    TaskStatus = "OUTPUT_EXISTS_SKIP"       // destination present, overwrite off
	StatusOutputExistsRewrite TaskStatus = "OUTPUT_EXISTS_OVERWRITE"  // destination present, overwrite on
	StatusDone                TaskStatus = "DONE"                     // OCR succeeded
	StatusFailed              TaskStatus = "FAILED"                   // OCR failed (batch continues)
)

// PdfKind is the classifier's verdict on a document.
type PdfKind string

const (
	// KindText means the document already carries a usable text layer.
	KindText PdfKind = "TEXT_PDF"
	// KindImage means scanned/rasterized content that needs OCR.
	KindImage PdfKind = "IMAGE_PDF"
)
