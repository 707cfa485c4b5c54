//go:build !ocr

// Package ocr recognizes text in extracted factsheet images so chart
// blocks can carry a textual description.
//
// This is the stub compiled when the "ocr" build tag is not set; New
// returns ErrNotEnabled and the pipeline runs without descriptions.
// Rebuild with the tag (and a system tesseract install) to enable it:
//
//	go build -tags ocr
package ocr

import "errors"

// ErrNotEnabled is returned by New when the binary was built without
// the "ocr" tag.
var ErrNotEnabled = errors.New("ocr: not enabled (rebuild with -tags ocr)")

// Client performs OCR over image files. The stub has no backing engine.
type Client struct{}

// New always fails in the stub build.
func New(lang string) (*Client, error) {
	return nil, ErrNotEnabled
}

// RecognizeFile always fails in the stub build.
func (c *Client) RecognizeFile(path string) (string, error) {
	return "", ErrNotEnabled
}

// Close is a no-op in the stub build.
func (c *Client) Close() error { return nil }
