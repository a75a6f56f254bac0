package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/errgroup"

	"github.com/foliolabs/folio-cli/internal/core/domain"
	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
	"github.com/foliolabs/folio-cli/internal/core/ports/driving"
	"github.com/foliolabs/folio-cli/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// UploadService ingests PDF files: validate, optimize, store, cover.
type UploadService struct {
	pubs   driven.PublicationStore
	blobs  driven.BlobStore
	covers driven.CoverGenerator
}

// NewUploadService creates a new upload service.
func NewUploadService(
	pubs driven.PublicationStore,
	blobs driven.BlobStore,
	covers driven.CoverGenerator,
) *UploadService {
	return &UploadService{
		pubs:   pubs,
		blobs:  blobs,
		covers: covers,
	}
}

// Upload validates and optimizes the PDF at path, stores the document and
// a generated cover concurrently, and creates the publication record.
func (s *UploadService) Upload(ctx context.Context, path, title string) (*domain.Publication, error) {
	if s.pubs == nil || s.blobs == nil {
		return nil, domain.ErrStoreUnavailable
	}
	logger.Section("Upload")
	logger.Info("ingesting %s", path)

	tempDir, err := os.MkdirTemp("", "folio-upload-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	optimized := filepath.Join(tempDir, "optimized.pdf")
	if err := optimizePDF(path, optimized); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}

	pageCount, err := api.PageCountFile(optimized)
	if err != nil {
		return nil, fmt.Errorf("%w: counting pages: %v", domain.ErrInvalidDocument, err)
	}
	logger.Debug("optimized PDF, %d pages", pageCount)

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	id := uuid.NewString()

	var documentURL, coverURL string
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		f, err := os.Open(optimized)
		if err != nil {
			return fmt.Errorf("opening optimized PDF: %w", err)
		}
		defer f.Close()
		url, err := s.blobs.Put(gctx, id+"/document.pdf", f)
		if err != nil {
			return fmt.Errorf("storing document: %w", err)
		}
		documentURL = url
		return nil
	})
	if s.covers != nil {
		eg.Go(func() error {
			png, err := s.covers.Generate(gctx, optimized)
			if err != nil {
				// Covers are best-effort: the publication is still
				// viewable without one.
				logger.Warn("generating cover: %v", err)
				return nil
			}
			url, err := s.blobs.Put(gctx, id+"/cover.png", bytes.NewReader(png))
			if err != nil {
				logger.Warn("storing cover: %v", err)
				return nil
			}
			coverURL = url
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	now := time.Now()
	pub := &domain.Publication{
		ID:          id,
		Title:       title,
		DocumentURL: documentURL,
		CoverURL:    coverURL,
		PageCount:   pageCount,
		Status:      domain.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.pubs.Save(ctx, pub); err != nil {
		return nil, fmt.Errorf("saving publication: %w", err)
	}
	logger.Info("created publication %s (%q)", pub.ID, pub.Title)
	return pub, nil
}

// optimizePDF validates and rewrites the PDF with relaxed validation, the
// same pass applied to every ingested document.
func optimizePDF(inPath, outPath string) error {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return api.OptimizeFile(inPath, outPath, cfg)
}
