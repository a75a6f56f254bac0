package services

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/foliolabs/folio-cli/internal/core/ports/driving"
	"github.com/foliolabs/folio-cli/internal/logger"
)

// Watcher uploads PDF files dropped into a directory. Uploads are
// rate-limited so a bulk copy into the folder doesn't saturate the
// backend.
type Watcher struct {
	uploads driving.UploadService
	limiter *rate.Limiter
}

// NewWatcher creates a drop-folder watcher. uploadsPerMinute bounds the
// ingestion rate; zero or negative selects a default of 6.
func NewWatcher(uploads driving.UploadService, uploadsPerMinute int) *Watcher {
	if uploadsPerMinute <= 0 {
		uploadsPerMinute = 6
	}
	return &Watcher{
		uploads: uploads,
		limiter: rate.NewLimiter(rate.Limit(float64(uploadsPerMinute)/60.0), 1),
	}
}

// Watch blocks watching dir until ctx is cancelled, uploading every new
// PDF that appears. Individual upload failures are logged and skipped.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return err
	}
	logger.Info("watching %s for new PDFs", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !isPDF(event.Name) {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return err
			}
			if _, err := w.uploads.Upload(ctx, event.Name, ""); err != nil {
				logger.Warn("uploading %s: %v", event.Name, err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
