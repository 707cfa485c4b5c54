package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Options configures PDF extraction.
type Options struct {
	// ImagesDir is the directory embedded images are written to.
	// Empty disables image extraction entirely.
	ImagesDir string
}

// PDFSource extracts pages from a PDF file: text via ledongthuc/pdf,
// embedded images via pdfcpu, tables from the page text layout.
type PDFSource struct {
	file      *os.File
	reader    *pdf.Reader
	imgCtx    *model.Context
	imagesDir string
	pages     int
}

// OpenPDF opens a PDF for page extraction. When image extraction is
// requested but the file cannot be prepared for it, the source still
// opens and only a warning is logged; text and tables keep working.
func OpenPDF(path string, opts Options) (*PDFSource, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	s := &PDFSource{
		file:      f,
		reader:    reader,
		imagesDir: opts.ImagesDir,
		pages:     reader.NumPage(),
	}

	if opts.ImagesDir != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			s.imgCtx, err = api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
		}
		if err != nil {
			slog.Warn("extract: image extraction unavailable", "file", path, "error", err)
			s.imgCtx = nil
		}
	}

	return s, nil
}

// PageCount reports the number of pages in the PDF.
func (s *PDFSource) PageCount() int { return s.pages }

// Close releases the underlying file handle.
func (s *PDFSource) Close() error { return s.file.Close() }

// Page extracts page n (1-based). Text failure fails the page; image
// failure degrades to a text-and-tables-only page with a warning.
func (s *PDFSource) Page(ctx context.Context, n int) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n < 1 || n > s.pages {
		return nil, fmt.Errorf("page %d out of range [1,%d]", n, s.pages)
	}

	p := &Page{Number: n}

	pg := s.reader.Page(n)
	if pg.V.IsNull() {
		return p, nil
	}

	text, err := pg.GetPlainText(nil)
	if err != nil {
		return nil, fmt.Errorf("extracting page %d text: %w", n, err)
	}
	p.Text = text
	p.Tables = DetectTables(text)

	if s.imgCtx != nil {
		images, err := s.extractImages(n)
		if err != nil {
			slog.Warn("extract: image extraction failed", "page", n, "error", err)
		} else {
			p.Images = images
		}
	}

	return p, nil
}

// extractImages writes page n's embedded images to the images directory
// as page_<n>_img_<i>.<ext> and returns their records in object order.
func (s *PDFSource) extractImages(pageNr int) ([]Image, error) {
	found, err := pdfcpu.ExtractPageImages(s.imgCtx, pageNr, false)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(s.imagesDir, 0o755); err != nil {
		return nil, err
	}

	objNrs := make([]int, 0, len(found))
	for nr := range found {
		objNrs = append(objNrs, nr)
	}
	sort.Ints(objNrs)

	var images []Image
	for i, objNr := range objNrs {
		img := found[objNr]
		ext := img.FileType
		if ext == "" {
			ext = "png"
		}
		path := filepath.Join(s.imagesDir, fmt.Sprintf("page_%d_img_%d.%s", pageNr, i+1, ext))
		if err := writeImage(path, img); err != nil {
			slog.Warn("extract: could not write image", "page", pageNr, "obj", objNr, "error", err)
			continue
		}
		images = append(images, Image{Path: path, PageIndex: pageNr})
	}
	return images, nil
}

func writeImage(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
