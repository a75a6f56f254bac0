package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/foliolabs/folio-cli/internal/core/domain"
	"github.com/foliolabs/folio-cli/internal/core/ports/driving"
)

// mockPublicationService implements driving.PublicationService for testing.
type mockPublicationService struct {
	pubs      []domain.Publication
	listErr   error
	getErr    error
	statusErr error
	statuses  map[string]domain.Status
	scheduled map[string]time.Time
	shares    []string
}

func (m *mockPublicationService) List(context.Context) ([]domain.Publication, error) {
	return m.pubs, m.listErr
}

func (m *mockPublicationService) Get(_ context.Context, id string) (*domain.Publication, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.pubs {
		if m.pubs[i].ID == id {
			return &m.pubs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockPublicationService) SetStatus(_ context.Context, id string, status domain.Status) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	if m.statuses == nil {
		m.statuses = make(map[string]domain.Status)
	}
	m.statuses[id] = status
	return nil
}

func (m *mockPublicationService) Schedule(_ context.Context, id string, at time.Time) error {
	if m.scheduled == nil {
		m.scheduled = make(map[string]time.Time)
	}
	m.scheduled[id] = at
	return nil
}

func (m *mockPublicationService) Delete(context.Context, string) error { return nil }

func (m *mockPublicationService) RecordView(context.Context, string) {}

func (m *mockPublicationService) RecordShare(_ context.Context, id string) {
	m.shares = append(m.shares, id)
}

// mockShareService implements driving.ShareService for testing.
type mockShareService struct {
	pngErr error
}

func (m *mockShareService) URL(id string) string {
	return "https://folio.pub/v/" + id
}

func (m *mockShareService) QRCodePNG(string, int) ([]byte, error) {
	if m.pngErr != nil {
		return nil, m.pngErr
	}
	return []byte("\x89PNG fake"), nil
}

func (m *mockShareService) QRCodeCells(string) (string, error) {
	return "▀▄▀▄\n▄▀▄▀\n", nil
}

// mockUploadService implements driving.UploadService for testing.
type mockUploadService struct {
	pub *domain.Publication
	err error
}

func (m *mockUploadService) Upload(_ context.Context, path, title string) (*domain.Publication, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pub, nil
}

// setupCLITest swaps the package services for mocks and returns a restore
// function. Wired services make initServices a no-op.
func setupCLITest(pubs driving.PublicationService, share driving.ShareService, uploads driving.UploadService) func() {
	oldPubs, oldShare, oldUploads := publicationService, shareService, uploadService
	publicationService = pubs
	shareService = share
	uploadService = uploads
	return func() {
		publicationService = oldPubs
		shareService = oldShare
		uploadService = oldUploads
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "folio", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("demo"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("9.9.9")

	assert.Equal(t, "9.9.9", version)
}

func TestBrandingFromConfig_Defaults(t *testing.T) {
	b := brandingFromConfig(&mockConfigStore{values: map[string]any{}})

	assert.Equal(t, domain.DefaultBranding(), b)
}

func TestBrandingFromConfig_Overrides(t *testing.T) {
	b := brandingFromConfig(&mockConfigStore{values: map[string]any{
		"branding.accent_colour":  "#112233",
		"branding.logo_text":      "acme",
		"branding.show_title_bar": false,
	}})

	assert.Equal(t, "#112233", b.AccentColour)
	assert.Equal(t, "acme", b.LogoText)
	assert.False(t, b.ShowTitleBar)
}

// mockConfigStore implements driven.ConfigStore for testing.
type mockConfigStore struct {
	values map[string]any
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if s, ok := m.values[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if i, ok := m.values[key].(int); ok {
		return i
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	b, _ := m.values[key].(bool)
	return b
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
