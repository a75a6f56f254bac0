package services

import (
	"context"
	"fmt"
	"time"

	"github.com/foliolabs/folio-cli/internal/core/domain"
	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
	"github.com/foliolabs/folio-cli/internal/core/ports/driving"
	"github.com/foliolabs/folio-cli/internal/logger"
)

// Ensure PublicationService implements the interface.
var _ driving.PublicationService = (*PublicationService)(nil)

// PublicationService manages the publication catalogue.
type PublicationService struct {
	store driven.PublicationStore
}

// NewPublicationService creates a new publication service.
func NewPublicationService(store driven.PublicationStore) *PublicationService {
	return &PublicationService{store: store}
}

// List returns all publications, newest first.
func (s *PublicationService) List(ctx context.Context) ([]domain.Publication, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.store.List(ctx)
}

// Get retrieves a publication by ID.
func (s *PublicationService) Get(ctx context.Context, id string) (*domain.Publication, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if id == "" {
		return nil, fmt.Errorf("%w: empty publication id", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// SetStatus changes the visibility status.
func (s *PublicationService) SetStatus(ctx context.Context, id string, status domain.Status) error {
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}
	if !status.Valid() {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	if status == domain.StatusScheduled {
		return fmt.Errorf("%w: use Schedule to set a release time", domain.ErrInvalidInput)
	}

	pub, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	pub.Status = status
	pub.ScheduledAt = nil
	pub.UpdatedAt = time.Now()
	return s.store.Save(ctx, pub)
}

// Schedule marks the publication for release at the given time.
func (s *PublicationService) Schedule(ctx context.Context, id string, at time.Time) error {
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}
	if at.Before(time.Now()) {
		return fmt.Errorf("%w: release time is in the past", domain.ErrInvalidInput)
	}

	pub, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	pub.Status = domain.StatusScheduled
	pub.ScheduledAt = &at
	pub.UpdatedAt = time.Now()
	return s.store.Save(ctx, pub)
}

// Delete removes a publication and its metadata.
func (s *PublicationService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}
	return s.store.Delete(ctx, id)
}

// RecordView records one view. Errors are swallowed and logged; a failed
// counter update must never disturb the reader.
func (s *PublicationService) RecordView(ctx context.Context, id string) {
	if s.store == nil {
		return
	}
	if err := s.store.IncrementViews(ctx, id); err != nil {
		logger.Warn("recording view for %s: %v", id, err)
	}
}

// RecordShare records one share. Same fire-and-forget policy as RecordView.
func (s *PublicationService) RecordShare(ctx context.Context, id string) {
	if s.store == nil {
		return
	}
	if err := s.store.IncrementShares(ctx, id); err != nil {
		logger.Warn("recording share for %s: %v", id, err)
	}
}
