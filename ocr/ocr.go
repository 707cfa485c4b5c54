//go:build ocr

// Package ocr recognizes text in extracted factsheet images so chart
// blocks can carry a textual description. It wraps the Tesseract engine
// via gosseract, which needs cgo and a system tesseract install; build
// with the "ocr" tag to enable it:
//
//	go build -tags ocr
//
// Without the tag a stub is compiled and New reports ErrNotEnabled.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client performs OCR over image files. Close it to release the
// underlying Tesseract handle.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client for the given language ("eng" when empty).
func New(lang string) (*Client, error) {
	c := gosseract.NewClient()
	if lang != "" {
		if err := c.SetLanguage(lang); err != nil {
			c.Close()
			return nil, fmt.Errorf("setting OCR language: %w", err)
		}
	}
	return &Client{client: c}, nil
}

// RecognizeFile runs OCR on one image file and returns the recognized
// text, whitespace-trimmed. An empty string means nothing was legible.
func (c *Client) RecognizeFile(path string) (string, error) {
	if err := c.client.SetImage(path); err != nil {
		return "", fmt.Errorf("setting OCR image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing %s: %w", path, err)
	}
	return strings.TrimSpace(text), nil
}

// Close releases the Tesseract handle.
func (c *Client) Close() error {
	return c.client.Close()
}
