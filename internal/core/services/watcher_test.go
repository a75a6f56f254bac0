package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio-cli/internal/core/domain"
)

type recordingUploads struct {
	paths chan string
}

func (r *recordingUploads) Upload(_ context.Context, path, _ string) (*domain.Publication, error) {
	r.paths <- path
	return &domain.Publication{ID: "u1"}, nil
}

func TestWatcher_UploadsDroppedPDFs(t *testing.T) {
	dir := t.TempDir()
	uploads := &recordingUploads{paths: make(chan string, 4)}
	w := NewWatcher(uploads, 600)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, dir) }()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.PDF"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("x"), 0o644))

	select {
	case path := <-uploads.paths:
		assert.Equal(t, filepath.Join(dir, "report.PDF"), path)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for upload")
	}

	// The non-PDF must not trigger a second upload.
	select {
	case path := <-uploads.paths:
		t.Fatalf("unexpected upload of %s", path)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(&recordingUploads{paths: make(chan string, 1)}, 0)

	err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestIsPDF(t *testing.T) {
	assert.True(t, isPDF("a/b/report.pdf"))
	assert.True(t, isPDF("REPORT.PDF"))
	assert.False(t, isPDF("report.pdf.part"))
	assert.False(t, isPDF("notes.txt"))
}
