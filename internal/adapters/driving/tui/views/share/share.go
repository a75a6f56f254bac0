// Package share provides the share screen: the public URL and its QR code
// rendered as terminal cells.
package share

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio-cli/internal/core/domain"
	"github.com/foliolabs/folio-cli/internal/core/ports/driving"
)

// View is the share view.
type View struct {
	styles       *styles.Styles
	keys         *keymap.KeyMap
	share        driving.ShareService
	publications driving.PublicationService

	pub    *domain.Publication
	url    string
	cells  string
	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new share view.
func NewView(
	s *styles.Styles,
	keys *keymap.KeyMap,
	share driving.ShareService,
	publications driving.PublicationService,
) *View {
	return &View{
		styles:       s,
		keys:         keys,
		share:        share,
		publications: publications,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetPublication mounts the share view on a publication and loads its QR
// code. Each mount records one share, fire and forget.
func (v *View) SetPublication(pub domain.Publication) tea.Cmd {
	v.pub = &pub
	v.url = ""
	v.cells = ""
	v.err = nil
	return tea.Batch(v.loadCode(pub.ID), v.recordShare(pub.ID))
}

// loadCode returns a command that builds the share URL and QR cells.
func (v *View) loadCode(id string) tea.Cmd {
	return func() tea.Msg {
		if v.share == nil {
			return messages.ShareCodeLoaded{ID: id, Err: fmt.Errorf("share service not available")}
		}
		cells, err := v.share.QRCodeCells(id)
		return messages.ShareCodeLoaded{
			ID:    id,
			URL:   v.share.URL(id),
			Cells: cells,
			Err:   err,
		}
	}
}

// recordShare registers one share for this mount.
func (v *View) recordShare(id string) tea.Cmd {
	return func() tea.Msg {
		if v.publications != nil {
			v.publications.RecordShare(context.Background(), id)
		}
		return nil
	}
}

// Update handles messages for the share view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.ShareCodeLoaded:
		if v.pub == nil || msg.ID != v.pub.ID {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.url = msg.URL
		v.cells = msg.Cells
		v.err = nil
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keys.Back) {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewLibrary}
			}
		}
	}

	return v, nil
}

// View renders the share view.
func (v *View) View() string {
	var b strings.Builder

	title := "Share"
	if v.pub != nil {
		title = "Share - " + v.pub.Title
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.cells == "":
		b.WriteString(v.styles.Muted.Render("Generating QR code..."))
	default:
		b.WriteString(v.cells)
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render(v.url))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[esc] back to library"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// URL returns the loaded share URL.
func (v *View) URL() string {
	return v.url
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
