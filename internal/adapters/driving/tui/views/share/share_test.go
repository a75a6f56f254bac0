package share

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio-cli/internal/core/domain"
	"github.com/foliolabs/folio-cli/internal/core/services"
)

type fakeShare struct {
	cellsErr error
}

func (f *fakeShare) URL(id string) string { return "https://folio.pub/v/" + id }
func (f *fakeShare) QRCodePNG(string, int) ([]byte, error) {
	return []byte("png"), nil
}
func (f *fakeShare) QRCodeCells(string) (string, error) {
	if f.cellsErr != nil {
		return "", f.cellsErr
	}
	return "██▀▄\n▄▀██\n", nil
}

type shareCounter struct {
	services.PublicationService
	shares []string
}

func (s *shareCounter) RecordShare(_ context.Context, id string) {
	s.shares = append(s.shares, id)
}

func drain(v *View, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			drain(v, c)
		}
	default:
		_, next := v.Update(msg)
		drain(v, next)
	}
}

func TestView_LoadsQRCode(t *testing.T) {
	counter := &shareCounter{}
	v := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), &fakeShare{}, counter)
	v.SetDimensions(80, 24)

	drain(v, v.SetPublication(domain.Publication{ID: "p1", Title: "Catalogue"}))

	assert.Equal(t, "https://folio.pub/v/p1", v.URL())
	assert.Contains(t, v.View(), "██▀▄")
	assert.Contains(t, v.View(), "https://folio.pub/v/p1")
	assert.Equal(t, []string{"p1"}, counter.shares)
}

func TestView_EncodeError(t *testing.T) {
	v := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), &fakeShare{cellsErr: errors.New("encode failed")}, &shareCounter{})
	v.SetDimensions(80, 24)

	drain(v, v.SetPublication(domain.Publication{ID: "p1"}))

	assert.Error(t, v.Err())
	assert.Contains(t, v.View(), "encode failed")
}

func TestView_StaleCodeIgnored(t *testing.T) {
	v := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), &fakeShare{}, &shareCounter{})
	v.SetDimensions(80, 24)
	drain(v, v.SetPublication(domain.Publication{ID: "p2"}))

	v.Update(messages.ShareCodeLoaded{ID: "p1", URL: "https://folio.pub/v/p1"})

	assert.Equal(t, "https://folio.pub/v/p2", v.URL())
}

func TestView_BackNavigates(t *testing.T) {
	v := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), &fakeShare{}, &shareCounter{})
	v.SetDimensions(80, 24)
	drain(v, v.SetPublication(domain.Publication{ID: "p1"}))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewLibrary, msg.View)
}
