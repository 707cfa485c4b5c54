package fundsheet

import "errors"

var (
	// ErrDocumentNotFound is returned when a document ID does not exist.
	ErrDocumentNotFound = errors.New("fundsheet: document not found")

	// ErrUnsupportedFormat is returned for inputs that are not PDF files.
	ErrUnsupportedFormat = errors.New("fundsheet: unsupported document format")

	// ErrExtractionFailed is returned when the input file cannot be opened
	// for page extraction at all. Per-page failures are isolated instead.
	ErrExtractionFailed = errors.New("fundsheet: extraction failed")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("fundsheet: invalid configuration")
)
