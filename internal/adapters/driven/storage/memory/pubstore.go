// Package memory provides in-memory stores for tests and ephemeral use.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/foliolabs/folio-cli/internal/core/domain"
	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
)

// Ensure PublicationStore implements the interface.
var _ driven.PublicationStore = (*PublicationStore)(nil)

// PublicationStore is an in-memory implementation of driven.PublicationStore.
type PublicationStore struct {
	mu   sync.RWMutex
	pubs map[string]domain.Publication
}

// NewPublicationStore creates a new in-memory publication store.
func NewPublicationStore() *PublicationStore {
	return &PublicationStore{
		pubs: make(map[string]domain.Publication),
	}
}

// Save stores or updates a publication.
func (s *PublicationStore) Save(_ context.Context, pub *domain.Publication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pubs[pub.ID] = *pub
	return nil
}

// Get retrieves a publication by ID.
func (s *PublicationStore) Get(_ context.Context, id string) (*domain.Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pub, ok := s.pubs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &pub, nil
}

// List returns all publications, newest first.
func (s *PublicationStore) List(_ context.Context) ([]domain.Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Publication, 0, len(s.pubs))
	for id := range s.pubs {
		result = append(result, s.pubs[id])
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a publication.
func (s *PublicationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pubs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.pubs, id)
	return nil
}

// IncrementViews adds one to the view counter.
func (s *PublicationStore) IncrementViews(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pub, ok := s.pubs[id]
	if !ok {
		return domain.ErrNotFound
	}
	pub.Stats.Views++
	s.pubs[id] = pub
	return nil
}

// IncrementShares adds one to the share counter.
func (s *PublicationStore) IncrementShares(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pub, ok := s.pubs[id]
	if !ok {
		return domain.ErrNotFound
	}
	pub.Stats.Shares++
	s.pubs[id] = pub
	return nil
}
