package driving

import (
	"context"
	"time"

	"github.com/foliolabs/folio-cli/internal/core/domain"
)

// PublicationService manages the publication catalogue.
type PublicationService interface {
	// List returns all publications, newest first.
	List(ctx context.Context) ([]domain.Publication, error)

	// Get retrieves a publication by ID.
	Get(ctx context.Context, id string) (*domain.Publication, error)

	// SetStatus changes the visibility status. Scheduling requires a
	// release time via Schedule instead.
	SetStatus(ctx context.Context, id string, status domain.Status) error

	// Schedule marks the publication for release at the given time.
	Schedule(ctx context.Context, id string, at time.Time) error

	// Delete removes a publication and its metadata.
	Delete(ctx context.Context, id string) error

	// RecordView records one view. Fire-and-forget: errors are swallowed
	// and logged, never returned to the viewer.
	RecordView(ctx context.Context, id string)

	// RecordShare records one share.
	RecordShare(ctx context.Context, id string)
}
