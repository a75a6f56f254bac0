package driven

import (
	"context"
	"io"
)

// BlobStore stores and resolves document and cover blobs.
// Implementations: Google Cloud Storage (cloud), local filesystem (demo).
type BlobStore interface {
	// Put stores the blob under name and returns its canonical URL.
	Put(ctx context.Context, name string, r io.Reader) (string, error)

	// Resolve makes the blob at url available as a local file and returns
	// its path. The renderer requires a file on disk.
	Resolve(ctx context.Context, url string) (string, error)

	// Open returns a reader for the raw blob bytes, used for download
	// independently of the rendering pipeline.
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}
