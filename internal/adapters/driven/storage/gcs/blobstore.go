// Package gcs provides the cloud blob store backed by Google Cloud Storage.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore stores document and cover blobs in a GCS bucket. Resolve
// downloads objects into a local cache directory because the renderer
// needs a file on disk.
type BlobStore struct {
	client   *storage.Client
	bucket   string
	cacheDir string
}

// NewBlobStore creates a GCS blob store for the given bucket. cacheDir
// holds downloaded documents; empty defaults to ~/.folio/cache. Client
// options allow supplying credentials explicitly.
func NewBlobStore(ctx context.Context, bucket, cacheDir string, opts ...option.ClientOption) (*BlobStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket must be provided to create a GCS blob store")
	}
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".folio", "cache")
	}
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &BlobStore{client: client, bucket: bucket, cacheDir: cacheDir}, nil
}

// Close closes the underlying client.
func (s *BlobStore) Close() error {
	return s.client.Close()
}

// Put stores the blob under name and returns its gs:// URL.
func (s *BlobStore) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("writing gs://%s/%s: %w", s.bucket, name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing gs://%s/%s: %w", s.bucket, name, err)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, name), nil
}

// Resolve downloads the object to the cache directory and returns the
// local path. Already-cached objects are reused.
func (s *BlobStore) Resolve(ctx context.Context, url string) (string, error) {
	object, err := s.objectName(url)
	if err != nil {
		return "", err
	}

	local := filepath.Join(s.cacheDir, filepath.FromSlash(object))
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}
	if err := os.MkdirAll(filepath.Dir(local), 0700); err != nil {
		return "", fmt.Errorf("creating cache subdirectory: %w", err)
	}

	r, err := s.client.Bucket(s.bucket).Object(object).NewReader(ctx)
	if err != nil {
		return "", fmt.Errorf("opening gs://%s/%s: %w", s.bucket, object, err)
	}
	defer r.Close()

	f, err := os.Create(local)
	if err != nil {
		return "", fmt.Errorf("creating cache file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(local)
		return "", fmt.Errorf("downloading gs://%s/%s: %w", s.bucket, object, err)
	}
	return local, nil
}

// Open returns a reader for the raw blob bytes.
func (s *BlobStore) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	object, err := s.objectName(url)
	if err != nil {
		return nil, err
	}
	r, err := s.client.Bucket(s.bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening gs://%s/%s: %w", s.bucket, object, err)
	}
	return r, nil
}

// objectName strips the gs://bucket/ prefix, accepting bare object names
// for records written by older versions.
func (s *BlobStore) objectName(url string) (string, error) {
	if strings.HasPrefix(url, "gs://") {
		rest := strings.TrimPrefix(url, "gs://")
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) != 2 || parts[0] != s.bucket {
			return "", fmt.Errorf("unexpected blob url %q for bucket %s", url, s.bucket)
		}
		return parts[1], nil
	}
	return url, nil
}
