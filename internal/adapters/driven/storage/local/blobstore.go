// Package local provides the filesystem blob store used in demo mode.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore stores blobs as plain files under a root directory.
type BlobStore struct {
	root string
}

// NewBlobStore creates a filesystem blob store rooted at dir.
// If dir is empty, defaults to ~/.folio/blobs.
func NewBlobStore(dir string) (*BlobStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".folio", "blobs")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}
	return &BlobStore{root: dir}, nil
}

// Put stores the blob under name and returns its file:// URL.
func (s *BlobStore) Put(_ context.Context, name string, r io.Reader) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("creating blob subdirectory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing blob %s: %w", name, err)
	}
	return "file://" + filepath.ToSlash(path), nil
}

// Resolve returns the local path for a file:// URL. The blob is already
// on disk, so no copy is made.
func (s *BlobStore) Resolve(_ context.Context, url string) (string, error) {
	path := s.localPath(url)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("resolving blob %s: %w", url, err)
	}
	return path, nil
}

// Open returns a reader for the raw blob bytes.
func (s *BlobStore) Open(_ context.Context, url string) (io.ReadCloser, error) {
	f, err := os.Open(s.localPath(url))
	if err != nil {
		return nil, fmt.Errorf("opening blob %s: %w", url, err)
	}
	return f, nil
}

func (s *BlobStore) localPath(url string) string {
	if strings.HasPrefix(url, "file://") {
		return filepath.FromSlash(strings.TrimPrefix(url, "file://"))
	}
	return filepath.Join(s.root, filepath.FromSlash(url))
}
