// Package covergen produces cover thumbnails from a document's first page.
package covergen

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
)

// coverWidth is the thumbnail width in pixels; height follows the page
// aspect ratio.
const coverWidth = 480

// Ensure Generator implements the interface.
var _ driven.CoverGenerator = (*Generator)(nil)

// Generator renders first-page PNG covers via the document renderer.
type Generator struct {
	renderer driven.DocumentRenderer
}

// NewGenerator creates a cover generator on top of renderer.
func NewGenerator(renderer driven.DocumentRenderer) *Generator {
	return &Generator{renderer: renderer}
}

// Generate renders the first page of the PDF at path to PNG bytes.
func (g *Generator) Generate(ctx context.Context, path string) ([]byte, error) {
	doc, err := g.renderer.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if doc.PageCount() < 1 {
		return nil, fmt.Errorf("document has no pages")
	}

	img, err := doc.RenderPage(ctx, 0, 2.0)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("rendered first page is empty")
	}
	height := coverWidth * bounds.Dy() / bounds.Dx()
	thumb := image.NewRGBA(image.Rect(0, 0, coverWidth, height))
	draw.ApproxBiLinear.Scale(thumb, thumb.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, fmt.Errorf("encoding cover PNG: %w", err)
	}
	return buf.Bytes(), nil
}
