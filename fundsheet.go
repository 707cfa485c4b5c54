// Package fundsheet turns mutual-fund factsheet PDFs into structured
// documents: a section/subsection breakdown of the prose, classified
// tables grouped by domain category, extracted document metadata, and
// the embedded images, all serialized as a single JSON record.
package fundsheet

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brunobiangulo/fundsheet/classify"
	"github.com/brunobiangulo/fundsheet/document"
	"github.com/brunobiangulo/fundsheet/extract"
	"github.com/brunobiangulo/fundsheet/metadata"
	"github.com/brunobiangulo/fundsheet/ocr"
	"github.com/brunobiangulo/fundsheet/segment"
	"github.com/brunobiangulo/fundsheet/store"
)

// Engine is the main entry point for the factsheet pipeline.
type Engine interface {
	// Parse extracts and structures a factsheet PDF without persisting it.
	Parse(ctx context.Context, path string, opts ...ParseOption) (*document.Document, error)

	// Ingest parses a factsheet and stores the structured document.
	// Returns the registry ID. Skips re-parsing if the content hash is
	// unchanged.
	Ingest(ctx context.Context, path string, opts ...ParseOption) (int64, error)

	// GetDocument loads a previously ingested structured document.
	GetDocument(ctx context.Context, id int64) (*document.Document, error)

	// ListDocuments returns all ingested factsheets.
	ListDocuments(ctx context.Context) ([]store.Document, error)

	// Delete removes an ingested factsheet from the registry.
	Delete(ctx context.Context, id int64) error

	// Close cleanly shuts down the engine.
	Close() error
}

// Recognizer produces text from an image file. The pipeline treats it as
// an opaque service; ocr.Client is the built-in implementation.
type Recognizer interface {
	RecognizeFile(path string) (string, error)
}

// ParseOption configures a single parse or ingest call.
type ParseOption func(*parseOptions)

type parseOptions struct {
	imagesDir    string
	emitOrphans  bool
	forceReparse bool
}

// WithImagesDir overrides the configured images directory for this call.
func WithImagesDir(dir string) ParseOption {
	return func(o *parseOptions) { o.imagesDir = dir }
}

// WithOrphanText emits pre-heading page text under an empty section
// instead of discarding it.
func WithOrphanText() ParseOption {
	return func(o *parseOptions) { o.emitOrphans = true }
}

// WithForceReparse forces re-parsing even if the hash hasn't changed.
func WithForceReparse() ParseOption {
	return func(o *parseOptions) { o.forceReparse = true }
}

// engine is the concrete implementation of Engine.
type engine struct {
	cfg        Config
	store      *store.Store
	recognizer Recognizer
}

// New creates a fundsheet engine with the given configuration.
func New(cfg Config) (Engine, error) {
	s, err := store.New(cfg.resolveDBPath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	e := &engine{cfg: cfg, store: s}

	if cfg.OCR {
		client, err := ocr.New(cfg.OCRLanguage)
		if err != nil {
			slog.Warn("ocr unavailable, continuing without image descriptions", "error", err)
		} else {
			e.recognizer = client
		}
	}

	return e, nil
}

func (e *engine) Close() error {
	if c, ok := e.recognizer.(io.Closer); ok {
		c.Close()
	}
	return e.store.Close()
}

// Parse extracts and structures one factsheet PDF.
func (e *engine) Parse(ctx context.Context, path string, opts ...ParseOption) (*document.Document, error) {
	o := e.options(opts)

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	src, err := extract.OpenPDF(path, extract.Options{ImagesDir: o.imagesDir})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer src.Close()

	doc := e.assemble(ctx, src, o)

	if e.cfg.DedupeImages && o.imagesDir != "" {
		if removed, err := extract.RemoveDuplicateImages(o.imagesDir); err != nil {
			slog.Warn("parse: image dedupe failed", "dir", o.imagesDir, "error", err)
		} else if removed > 0 {
			slog.Info("parse: removed duplicate images", "dir", o.imagesDir, "count", removed)
		}
	}

	return doc, nil
}

// assemble runs the structuring pipeline over an extraction source: pages
// strictly in order, the segmenter and classifier per page, and a single
// metadata pass across all page text. A failure on one page or table is
// logged and isolated; every other unit is still processed.
func (e *engine) assemble(ctx context.Context, src extract.Source, o *parseOptions) *document.Document {
	doc := document.New()
	seg := segment.Segmenter{EmitOrphans: o.emitOrphans}
	scanner := metadata.NewScanner()

	for n := 1; n <= src.PageCount(); n++ {
		entry := document.Page{PageNumber: n, Content: []*document.Block{}}

		page, err := src.Page(ctx, n)
		if err != nil {
			slog.Warn("assemble: page extraction failed", "page", n, "error", err)
			doc.Pages = append(doc.Pages, entry)
			continue
		}

		for _, p := range seg.Segment(page.Text) {
			entry.Content = append(entry.Content, document.ParagraphBlock(p))
		}

		for _, raw := range page.Tables {
			category, label := classify.Classify(raw)
			t := &document.Table{Page: n, TableData: raw, Category: category, Label: label}
			doc.AddTable(t)
			entry.Content = append(entry.Content, document.TableBlock(t))
		}

		for _, img := range page.Images {
			block := document.ChartBlock(img.Path)
			if e.recognizer != nil {
				if text, err := e.recognizer.RecognizeFile(img.Path); err != nil {
					slog.Warn("assemble: ocr failed", "image", img.Path, "error", err)
				} else {
					block.Description = text
				}
			}
			entry.Content = append(entry.Content, block)
		}

		scanner.ScanPage(page.Text)
		doc.Pages = append(doc.Pages, entry)
	}

	doc.Metadata = scanner.Result()
	return doc
}

// Ingest parses a factsheet and persists the structured document.
func (e *engine) Ingest(ctx context.Context, path string, opts ...ParseOption) (int64, error) {
	o := e.options(opts)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolving path: %w", err)
	}

	hash, err := fileHash(absPath)
	if err != nil {
		return 0, fmt.Errorf("hashing file: %w", err)
	}

	if !o.forceReparse {
		existing, err := e.store.GetDocumentByPath(ctx, absPath)
		if err == nil && existing.ContentHash == hash && existing.Status == "ready" {
			return existing.ID, nil // no change
		}
	}

	filename := filepath.Base(absPath)
	docID, err := e.store.UpsertDocument(ctx, store.Document{
		Path:        absPath,
		Filename:    filename,
		ContentHash: hash,
		Status:      "processing",
	})
	if err != nil {
		return 0, fmt.Errorf("upserting document: %w", err)
	}

	slog.Info("ingest: parsing factsheet", "file", filename, "doc_id", docID)
	start := time.Now()

	doc, err := e.Parse(ctx, absPath, opts...)
	if err != nil {
		e.store.UpdateDocumentStatus(ctx, docID, "error")
		return 0, err
	}

	slog.Info("ingest: parsing complete",
		"file", filename, "pages", len(doc.Pages), "tables", doc.TableCount(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	if _, err := e.store.UpsertDocument(ctx, store.Document{
		Path:        absPath,
		Filename:    filename,
		ContentHash: hash,
		Status:      "ready",
		FundName:    doc.Metadata.FundName,
		PageCount:   len(doc.Pages),
		TableCount:  doc.TableCount(),
	}); err != nil {
		return 0, fmt.Errorf("updating document: %w", err)
	}
	if err := e.store.SaveStructured(ctx, docID, doc); err != nil {
		e.store.UpdateDocumentStatus(ctx, docID, "error")
		return 0, fmt.Errorf("saving structured document: %w", err)
	}

	slog.Info("ingest: factsheet ready", "file", filename, "doc_id", docID)
	return docID, nil
}

// GetDocument loads a previously ingested structured document.
func (e *engine) GetDocument(ctx context.Context, id int64) (*document.Document, error) {
	doc, err := e.store.LoadStructured(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns all ingested factsheets.
func (e *engine) ListDocuments(ctx context.Context) ([]store.Document, error) {
	return e.store.ListDocuments(ctx)
}

// Delete removes an ingested factsheet from the registry.
func (e *engine) Delete(ctx context.Context, id int64) error {
	if err := e.store.DeleteDocument(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}
	return nil
}

// options applies call options on top of the engine configuration.
func (e *engine) options(opts []ParseOption) *parseOptions {
	o := &parseOptions{
		imagesDir:   e.cfg.ImagesDir,
		emitOrphans: e.cfg.EmitOrphanText,
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// fileHash computes the SHA-256 hash of a file's content.
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
