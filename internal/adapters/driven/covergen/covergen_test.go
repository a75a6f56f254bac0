package covergen

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
)

// fakeRenderer returns a fixed in-memory document.
type fakeRenderer struct {
	doc driven.Document
	err error
}

func (f *fakeRenderer) Open(string) (driven.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

type fakeDocument struct {
	pages     int
	w, h      int
	renderErr error
	closed    bool
}

func (d *fakeDocument) PageCount() int { return d.pages }

func (d *fakeDocument) PageSize(int) (float64, float64, error) {
	return float64(d.w), float64(d.h), nil
}

func (d *fakeDocument) RenderPage(_ context.Context, _ int, scale float64) (image.Image, error) {
	if d.renderErr != nil {
		return nil, d.renderErr
	}
	img := image.NewRGBA(image.Rect(0, 0, int(float64(d.w)*scale), int(float64(d.h)*scale)))
	for i := range img.Pix {
		img.Pix[i] = 0xEE
	}
	img.Set(0, 0, color.White)
	return img, nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

func TestGenerator_Generate(t *testing.T) {
	doc := &fakeDocument{pages: 5, w: 612, h: 792}
	g := NewGenerator(&fakeRenderer{doc: doc})

	data, err := g.Generate(context.Background(), "test.pdf")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 480, img.Bounds().Dx())
	// Height follows the page aspect ratio.
	assert.InDelta(t, 480*792/612, img.Bounds().Dy(), 1)
	assert.True(t, doc.closed)
}

func TestGenerator_OpenError(t *testing.T) {
	g := NewGenerator(&fakeRenderer{err: errors.New("bad pdf")})

	_, err := g.Generate(context.Background(), "test.pdf")
	assert.Error(t, err)
}

func TestGenerator_EmptyDocument(t *testing.T) {
	g := NewGenerator(&fakeRenderer{doc: &fakeDocument{pages: 0, w: 612, h: 792}})

	_, err := g.Generate(context.Background(), "test.pdf")
	assert.Error(t, err)
}

func TestGenerator_RenderError(t *testing.T) {
	g := NewGenerator(&fakeRenderer{doc: &fakeDocument{
		pages: 3, w: 612, h: 792, renderErr: errors.New("raster failed"),
	}})

	_, err := g.Generate(context.Background(), "test.pdf")
	assert.Error(t, err)
}
