package library

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio-cli/internal/core/domain"
)

type fakePublications struct {
	pubs      []domain.Publication
	listErr   error
	statusIDs []string
	deleted   []string
}

func (f *fakePublications) List(context.Context) ([]domain.Publication, error) {
	return f.pubs, f.listErr
}
func (f *fakePublications) Get(context.Context, string) (*domain.Publication, error) {
	return nil, domain.ErrNotFound
}
func (f *fakePublications) SetStatus(_ context.Context, id string, _ domain.Status) error {
	f.statusIDs = append(f.statusIDs, id)
	return nil
}
func (f *fakePublications) Schedule(context.Context, string, time.Time) error { return nil }
func (f *fakePublications) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakePublications) RecordView(context.Context, string)  {}
func (f *fakePublications) RecordShare(context.Context, string) {}

func testPublications(n int) []domain.Publication {
	pubs := make([]domain.Publication, n)
	for i := range pubs {
		pubs[i] = domain.Publication{
			ID:        string(rune('a' + i)),
			Title:     "Publication " + string(rune('A'+i)),
			PageCount: 10 + i,
			Status:    domain.StatusDraft,
		}
	}
	return pubs
}

func newView(pubs []domain.Publication) (*View, *fakePublications) {
	svc := &fakePublications{pubs: pubs}
	v := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), svc)
	v.SetDimensions(120, 40)
	return v, svc
}

func loadView(t *testing.T, v *View) {
	t.Helper()
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func TestView_LoadsPublications(t *testing.T) {
	v, _ := newView(testPublications(3))

	loadView(t, v)

	assert.Len(t, v.Publications(), 3)
	assert.Contains(t, v.View(), "Publication A")
}

func TestView_LoadError(t *testing.T) {
	v, svc := newView(nil)
	svc.listErr = errors.New("store down")

	loadView(t, v)

	assert.Error(t, v.Err())
	assert.Contains(t, v.View(), "store down")
}

func TestView_EmptyState(t *testing.T) {
	v, _ := newView(nil)

	loadView(t, v)

	assert.Contains(t, v.View(), "No publications yet")
}

func TestView_Navigation(t *testing.T) {
	v, _ := newView(testPublications(3))
	loadView(t, v)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, v.SelectedIndex())

	// Clamped at the last entry.
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, v.SelectedIndex())

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, v.SelectedIndex())
}

func TestView_SelectOpensViewer(t *testing.T) {
	v, _ := newView(testPublications(2))
	loadView(t, v)
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.PublicationSelected)
	require.True(t, ok)
	assert.Equal(t, "b", msg.Publication.ID)
}

func TestView_ShareRequested(t *testing.T) {
	v, _ := newView(testPublications(1))
	loadView(t, v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ShareRequested)
	require.True(t, ok)
	assert.Equal(t, "a", msg.Publication.ID)
}

func TestView_PublishReloads(t *testing.T) {
	v, svc := newView(testPublications(1))
	loadView(t, v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	require.NotNil(t, cmd)

	statusMsg := cmd()
	updated, ok := statusMsg.(messages.StatusUpdated)
	require.True(t, ok)
	assert.Equal(t, domain.StatusPublished, updated.Status)
	assert.Equal(t, []string{"a"}, svc.statusIDs)

	// A successful status change triggers a reload.
	_, reload := v.Update(statusMsg)
	assert.NotNil(t, reload)
}

func TestView_Delete(t *testing.T) {
	v, svc := newView(testPublications(2))
	loadView(t, v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{"a"}, svc.deleted)
}

func TestView_QuitKey(t *testing.T) {
	v, _ := newView(testPublications(1))
	loadView(t, v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)

	_, ok := cmd().(messages.Quit)
	assert.True(t, ok)
}

func TestView_StatusBadges(t *testing.T) {
	at := time.Now().Add(-time.Hour)
	pubs := []domain.Publication{
		{ID: "p1", Title: "Released", Status: domain.StatusScheduled, ScheduledAt: &at},
	}
	v, _ := newView(pubs)
	loadView(t, v)

	// A past release time reads as published.
	assert.Contains(t, v.View(), "published")
}
