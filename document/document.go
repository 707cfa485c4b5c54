// Package document defines the structured factsheet record produced by the
// pipeline and its JSON interchange encoding. The Document is the sole
// contract with downstream consumers (chart rendering, report building,
// OCR enrichment); everything in it is read-only once assembled.
package document

import (
	"encoding/json"
	"fmt"
	"io"
)

// Category tags a classified table with one of the fixed domain categories.
type Category string

const (
	Portfolio         Category = "portfolio"
	SchemePerformance Category = "scheme_performance"
	Allocation        Category = "allocation"
	Risk              Category = "risk"
	Macro             Category = "macro"
	DebtPortfolio     Category = "debt_portfolio"
)

// Categories lists every table category in the order the sections map is
// initialized. An unclassified table has the empty Category.
var Categories = []Category{
	Portfolio,
	SchemePerformance,
	Allocation,
	Risk,
	Macro,
	DebtPortfolio,
}

// NotAvailable is the sentinel for a metadata field no line matched.
const NotAvailable = "N/A"

// Metadata holds the document-level fields scanned from page text.
// Each field is write-once: the first matching line in document order wins.
type Metadata struct {
	FundName            string `json:"fund_name"`
	AUM                 string `json:"aum"`
	Benchmark           string `json:"benchmark"`
	AdditionalBenchmark string `json:"additional_benchmark"`
	FundManager         string `json:"fund_manager"`
	LaunchDate          string `json:"launch_date"`
}

// NewMetadata returns a Metadata with every field set to NotAvailable.
func NewMetadata() Metadata {
	return Metadata{
		FundName:            NotAvailable,
		AUM:                 NotAvailable,
		Benchmark:           NotAvailable,
		AdditionalBenchmark: NotAvailable,
		FundManager:         NotAvailable,
		LaunchDate:          NotAvailable,
	}
}

// Table is one raw table extracted from a page, with its classification.
// Category and Label are empty for unclassified tables. TableData is never
// mutated after classification; the same Table object is referenced from
// both the page content stream and the sections map.
type Table struct {
	Page      int        `json:"page"`
	TableData [][]string `json:"table_data"`
	Category  Category   `json:"category,omitempty"`
	Label     string     `json:"section_name,omitempty"`
}

// Paragraph is one contiguous run of body text under the most recently
// detected heading pair. Section is empty only for orphan text emitted
// ahead of the first heading (see segment.Segmenter.EmitOrphans).
type Paragraph struct {
	Section    string `json:"section"`
	SubSection string `json:"sub_section,omitempty"`
	Text       string `json:"text"`
}

// Block types used in a page's content stream.
const (
	BlockParagraph = "paragraph"
	BlockTable     = "table"
	BlockChart     = "chart"
)

// Block is one entry in a page's content stream: a paragraph, a table, or
// an extracted chart image. Fields are populated according to Type; the
// flat shape mirrors the interchange JSON.
//
// Description is an annotation slot owned by downstream OCR enrichment;
// the core preserves it across encode/decode but only fills it when OCR
// is enabled at parse time.
type Block struct {
	Type        string     `json:"type"`
	Section     string     `json:"section,omitempty"`
	SubSection  string     `json:"sub_section,omitempty"`
	Text        string     `json:"text,omitempty"`
	TableData   [][]string `json:"table_data,omitempty"`
	Image       string     `json:"image,omitempty"`
	Description string     `json:"description,omitempty"`
}

// ParagraphBlock wraps a segmented paragraph as a content block.
func ParagraphBlock(p Paragraph) *Block {
	return &Block{
		Type:       BlockParagraph,
		Section:    p.Section,
		SubSection: p.SubSection,
		Text:       p.Text,
	}
}

// TableBlock wraps a classified (or unclassified) table as a content block.
// The block shares the table's cell data with the sections map entry.
func TableBlock(t *Table) *Block {
	return &Block{
		Type:      BlockTable,
		Section:   t.Label,
		TableData: t.TableData,
	}
}

// ChartBlock wraps an extracted image as a content block.
func ChartBlock(imagePath string) *Block {
	return &Block{
		Type:  BlockChart,
		Image: imagePath,
	}
}

// Page is one input page's ordered content stream.
type Page struct {
	PageNumber int      `json:"page_number"`
	Content    []*Block `json:"content"`
}

// Document is the complete structured factsheet record.
type Document struct {
	Metadata Metadata              `json:"metadata"`
	Sections map[Category][]*Table `json:"sections"`
	Pages    []Page                `json:"pages"`
}

// New returns an empty Document with the sections map pre-populated with
// every category, so the interchange JSON always carries all six keys.
func New() *Document {
	sections := make(map[Category][]*Table, len(Categories))
	for _, c := range Categories {
		sections[c] = []*Table{}
	}
	return &Document{
		Metadata: NewMetadata(),
		Sections: sections,
		Pages:    []Page{},
	}
}

// AddTable appends t to the sections list for its category. Unclassified
// tables are ignored; they live only in their page's content stream.
func (d *Document) AddTable(t *Table) {
	if t.Category == "" {
		return
	}
	d.Sections[t.Category] = append(d.Sections[t.Category], t)
}

// TableCount returns the total number of tables across all pages.
func (d *Document) TableCount() int {
	n := 0
	for _, p := range d.Pages {
		for _, b := range p.Content {
			if b.Type == BlockTable {
				n++
			}
		}
	}
	return n
}

// Encode writes the document as indented JSON, the persisted interchange
// form consumed by all downstream tooling.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}

// Decode reads a document from its JSON interchange form.
func Decode(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &d, nil
}
