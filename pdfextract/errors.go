package pdfextract

import "errors"

// Sentinel errors for extraction failures.
var (
	// ErrNotPDF is returned when the input does not start with a PDF header
	ErrNotPDF = errors.New("not a PDF file")

	// ErrEncrypted is returned for encrypted files that cannot be opened,
	// either without a valid password or with an unsupported security handler
	ErrEncrypted = errors.New("encrypted PDF")

	// ErrMalformed is returned when the PDF structure cannot be parsed
	ErrMalformed = errors.New("malformed PDF")

	// ErrNoText is returned when no page holds extractable text, typically a
	// scanned document
	ErrNoText = errors.New("unsupported input: no extractable text")

	// ErrPageRange is returned when a requested page does not exist
	ErrPageRange = errors.New("page out of range")
)
