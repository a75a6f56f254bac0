// Package firestore provides the cloud publication store.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/foliolabs/folio-cli/internal/core/domain"
	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
)

// DefaultCollection is the Firestore collection for publications.
const DefaultCollection = "publications"

// Ensure PublicationStore implements the interface.
var _ driven.PublicationStore = (*PublicationStore)(nil)

// publicationDoc is the Firestore document shape. Counters live in flat
// fields so they can be updated with firestore.Increment without a
// read-modify-write cycle.
type publicationDoc struct {
	Title          string     `firestore:"title"`
	DocumentURL    string     `firestore:"documentUrl"`
	CoverURL       string     `firestore:"coverUrl,omitempty"`
	PageCount      int        `firestore:"pageCount"`
	Status         string     `firestore:"status"`
	ScheduledAt    *time.Time `firestore:"scheduledAt,omitempty"`
	Views          int64      `firestore:"views"`
	UniqueReaders  int64      `firestore:"uniqueReaders"`
	AvgReadSeconds float64    `firestore:"avgReadSeconds"`
	Shares         int64      `firestore:"shares"`
	CreatedAt      time.Time  `firestore:"createdAt"`
	UpdatedAt      time.Time  `firestore:"updatedAt"`
}

// PublicationStore is a Firestore-backed publication store.
type PublicationStore struct {
	client     *firestore.Client
	collection string
}

// NewPublicationStore creates a Firestore publication store for the given
// project. An empty collection selects DefaultCollection. Client options
// allow supplying credentials explicitly instead of relying on ambient
// application default credentials.
func NewPublicationStore(ctx context.Context, projectID, collection string, opts ...option.ClientOption) (*PublicationStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore store")
	}
	if collection == "" {
		collection = DefaultCollection
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &PublicationStore{client: client, collection: collection}, nil
}

// Close closes the underlying client.
func (s *PublicationStore) Close() error {
	return s.client.Close()
}

// Save stores or updates a publication.
func (s *PublicationStore) Save(ctx context.Context, pub *domain.Publication) error {
	now := time.Now().UTC()
	if pub.CreatedAt.IsZero() {
		pub.CreatedAt = now
	}
	pub.UpdatedAt = now

	_, err := s.client.Collection(s.collection).Doc(pub.ID).Set(ctx, toDoc(pub))
	if err != nil {
		return fmt.Errorf("saving publication %s: %w", pub.ID, err)
	}
	return nil
}

// Get retrieves a publication by ID.
func (s *PublicationStore) Get(ctx context.Context, id string) (*domain.Publication, error) {
	snap, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting publication %s: %w", id, err)
	}
	return fromSnap(snap)
}

// List returns all publications, newest first.
func (s *PublicationStore) List(ctx context.Context) ([]domain.Publication, error) {
	snaps, err := s.client.Collection(s.collection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing publications: %w", err)
	}

	pubs := make([]domain.Publication, 0, len(snaps))
	for _, snap := range snaps {
		pub, err := fromSnap(snap)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, *pub)
	}
	return pubs, nil
}

// Delete removes a publication.
func (s *PublicationStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.Collection(s.collection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("deleting publication %s: %w", id, err)
	}
	return nil
}

// IncrementViews adds one to the view counter.
func (s *PublicationStore) IncrementViews(ctx context.Context, id string) error {
	return s.increment(ctx, id, "views")
}

// IncrementShares adds one to the share counter.
func (s *PublicationStore) IncrementShares(ctx context.Context, id string) error {
	return s.increment(ctx, id, "shares")
}

func (s *PublicationStore) increment(ctx context.Context, id, field string) error {
	_, err := s.client.Collection(s.collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.Increment(1)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("incrementing %s for %s: %w", field, id, err)
	}
	return nil
}

func toDoc(pub *domain.Publication) publicationDoc {
	return publicationDoc{
		Title:          pub.Title,
		DocumentURL:    pub.DocumentURL,
		CoverURL:       pub.CoverURL,
		PageCount:      pub.PageCount,
		Status:         string(pub.Status),
		ScheduledAt:    pub.ScheduledAt,
		Views:          pub.Stats.Views,
		UniqueReaders:  pub.Stats.UniqueReaders,
		AvgReadSeconds: pub.Stats.AvgReadSeconds,
		Shares:         pub.Stats.Shares,
		CreatedAt:      pub.CreatedAt,
		UpdatedAt:      pub.UpdatedAt,
	}
}

func fromSnap(snap *firestore.DocumentSnapshot) (*domain.Publication, error) {
	var doc publicationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decoding publication %s: %w", snap.Ref.ID, err)
	}
	return &domain.Publication{
		ID:          snap.Ref.ID,
		Title:       doc.Title,
		DocumentURL: doc.DocumentURL,
		CoverURL:    doc.CoverURL,
		PageCount:   doc.PageCount,
		Status:      domain.Status(doc.Status),
		ScheduledAt: doc.ScheduledAt,
		Stats: domain.Stats{
			Views:          doc.Views,
			UniqueReaders:  doc.UniqueReaders,
			AvgReadSeconds: doc.AvgReadSeconds,
			Shares:         doc.Shares,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
