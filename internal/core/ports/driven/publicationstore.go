package driven

import (
	"context"

	"github.com/foliolabs/folio-cli/internal/core/domain"
)

// PublicationStore persists publication metadata.
// Implementations: Firestore (cloud), SQLite (demo mode), memory (tests).
type PublicationStore interface {
	// Save stores or updates a publication.
	Save(ctx context.Context, pub *domain.Publication) error

	// Get retrieves a publication by ID.
	Get(ctx context.Context, id string) (*domain.Publication, error)

	// List returns all publications, newest first.
	List(ctx context.Context) ([]domain.Publication, error)

	// Delete removes a publication.
	Delete(ctx context.Context, id string) error

	// IncrementViews adds one to the view counter.
	IncrementViews(ctx context.Context, id string) error

	// IncrementShares adds one to the share counter.
	IncrementShares(ctx context.Context, id string) error
}
