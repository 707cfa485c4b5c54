// Package extract produces the raw per-page inputs the structuring
// pipeline consumes: plain page text, cleaned table grids, and embedded
// images written to disk. The pipeline treats a Source as an opaque
// collaborator returning complete results; PDF is the only built-in
// implementation.
package extract

import "context"

// Image is one embedded image extracted from a page. Path is opaque to
// the pipeline; the image bytes themselves are never consumed by the core.
type Image struct {
	Path      string `json:"image_path"`
	PageIndex int    `json:"page_index"`
}

// Page is the complete raw extraction result for one input page.
// Immutable after extraction.
type Page struct {
	Number int
	Text   string
	Tables [][][]string
	Images []Image
}

// Source yields pages of a paginated document in order.
type Source interface {
	// PageCount reports the number of pages in the document.
	PageCount() int

	// Page extracts page n (1-based). A failed extraction of one page
	// must not affect any other page.
	Page(ctx context.Context, n int) (*Page, error)

	// Close releases any underlying resources.
	Close() error
}
