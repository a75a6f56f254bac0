package driven

import (
	"context"
	"image"
)

// DocumentRenderer opens PDF files for rasterization.
// Runtime configuration of the rendering engine happens once at startup;
// the returned handles carry no ambient global state.
type DocumentRenderer interface {
	// Open parses the PDF at path. The handle is created once per viewing
	// session and shared by all page rasterizations.
	Open(path string) (Document, error)
}

// Document is a parsed PDF handle. It is read-only and safe for
// concurrent page rasterization; rendering page N does not mutate state
// needed by page M.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageSize returns the media box of page index in points.
	PageSize(index int) (w, h float64, err error)

	// RenderPage rasterizes page index at the given scale relative to the
	// page's natural 72dpi size.
	RenderPage(ctx context.Context, index int, scale float64) (image.Image, error)

	// Close releases the underlying document resources.
	Close() error
}
