package driven

import "context"

// CoverGenerator produces a still image of a document's first page.
// Invoked once at upload time; not part of the live viewing path.
type CoverGenerator interface {
	// Generate renders the first page of the PDF at path to PNG bytes.
	Generate(ctx context.Context, path string) ([]byte, error)
}
