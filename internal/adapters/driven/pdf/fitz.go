package pdf

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.DocumentRenderer = (*Renderer)(nil)

// Renderer opens PDF files with MuPDF. Stateless; all per-document state
// lives in the returned handle.
type Renderer struct{}

// NewRenderer creates a new MuPDF-backed renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Open parses the PDF at path. The returned handle is opened once per
// viewing session and shared by all page rasterizations.
func (r *Renderer) Open(path string) (driven.Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &document{doc: doc}, nil
}

// document adapts *fitz.Document to driven.Document.
type document struct {
	doc *fitz.Document
}

// PageCount returns the number of pages.
func (d *document) PageCount() int {
	return d.doc.NumPage()
}

// PageSize returns the page bounds in points.
func (d *document) PageSize(index int) (w, h float64, err error) {
	bound, err := d.doc.Bound(index)
	if err != nil {
		return 0, 0, fmt.Errorf("reading bounds of page %d: %w", index, err)
	}
	return float64(bound.Dx()), float64(bound.Dy()), nil
}

// RenderPage rasterizes page index at the given scale relative to 72dpi.
// The context is consulted before the (synchronous) MuPDF call so stale
// requests from an unmounted viewer are dropped early.
func (d *document) RenderPage(ctx context.Context, index int, scale float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scale <= 0 {
		scale = 1
	}
	img, err := d.doc.ImageDPI(index, 72*scale)
	if err != nil {
		return nil, fmt.Errorf("rasterizing page %d: %w", index, err)
	}
	return img, nil
}

// Close releases the underlying document resources.
func (d *document) Close() error {
	return d.doc.Close()
}
