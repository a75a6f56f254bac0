package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStore_PutResolveOpen(t *testing.T) {
	s, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Put(ctx, "p1/document.pdf", strings.NewReader("%PDF-1.7 fake"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"), "got %q", url)

	path, err := s.Resolve(ctx, url)
	require.NoError(t, err)
	assert.FileExists(t, path)

	r, err := s.Open(ctx, url)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", string(data))
}

func TestBlobStore_ResolveBareName(t *testing.T) {
	s, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Put(ctx, "p2/cover.png", strings.NewReader("png"))
	require.NoError(t, err)

	path, err := s.Resolve(ctx, "p2/cover.png")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestBlobStore_ResolveMissing(t *testing.T) {
	s, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Resolve(context.Background(), "nope/doc.pdf")
	assert.Error(t, err)
}
