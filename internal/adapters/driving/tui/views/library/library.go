// Package library provides the publication library view for the TUI.
package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio-cli/internal/core/domain"
	"github.com/foliolabs/folio-cli/internal/core/ports/driving"
)

// View is the publication library list view.
type View struct {
	styles       *styles.Styles
	keys         *keymap.KeyMap
	publications driving.PublicationService

	pubs         []domain.Publication
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	loading      bool
	err          error
}

// NewView creates a new library view.
func NewView(s *styles.Styles, keys *keymap.KeyMap, publications driving.PublicationService) *View {
	return &View{
		styles:       s,
		keys:         keys,
		publications: publications,
		pubs:         []domain.Publication{},
	}
}

// Init initialises the view and starts loading the listing.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadPublications()
}

// loadPublications returns a command that loads the library listing.
func (v *View) loadPublications() tea.Cmd {
	return func() tea.Msg {
		if v.publications == nil {
			return messages.PublicationsLoaded{Err: fmt.Errorf("publication service not available")}
		}
		pubs, err := v.publications.List(context.Background())
		return messages.PublicationsLoaded{Publications: pubs, Err: err}
	}
}

// Update handles messages for the library view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PublicationsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.pubs = msg.Publications
			v.err = nil
			if v.selected >= len(v.pubs) {
				v.selected = 0
				v.scrollOffset = 0
			}
		}
		return v, nil

	case messages.StatusUpdated:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.loadPublications()

	case messages.PublicationDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.loadPublications()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keys.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(keyStr, v.keys.Down):
		if v.selected < len(v.pubs)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(keyStr, v.keys.Select):
		if pub := v.SelectedPublication(); pub != nil {
			selected := *pub
			return v, func() tea.Msg {
				return messages.PublicationSelected{Publication: selected}
			}
		}
	case keymap.Matches(keyStr, v.keys.Share):
		if pub := v.SelectedPublication(); pub != nil {
			selected := *pub
			return v, func() tea.Msg {
				return messages.ShareRequested{Publication: selected}
			}
		}
	case keymap.Matches(keyStr, v.keys.Publish):
		if pub := v.SelectedPublication(); pub != nil {
			return v, v.setStatus(pub.ID, domain.StatusPublished)
		}
	case keymap.Matches(keyStr, v.keys.Unpublish):
		if pub := v.SelectedPublication(); pub != nil {
			return v, v.setStatus(pub.ID, domain.StatusDraft)
		}
	case keymap.Matches(keyStr, v.keys.Delete):
		if pub := v.SelectedPublication(); pub != nil {
			return v, v.deletePublication(pub.ID)
		}
	case keymap.Matches(keyStr, v.keys.Reload):
		v.loading = true
		return v, v.loadPublications()
	case keymap.Matches(keyStr, v.keys.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}

	return v, nil
}

// setStatus returns a command that updates a publication's status.
func (v *View) setStatus(id string, status domain.Status) tea.Cmd {
	return func() tea.Msg {
		err := v.publications.SetStatus(context.Background(), id, status)
		return messages.StatusUpdated{ID: id, Status: status, Err: err}
	}
}

// deletePublication returns a command that deletes a publication.
func (v *View) deletePublication(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.publications.Delete(context.Background(), id)
		return messages.PublicationDeleted{ID: id, Err: err}
	}
}

// adjustScroll keeps the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of rows available for the listing.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the library view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Library (%d)", len(v.pubs))))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading publications..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.pubs) == 0 {
		b.WriteString(v.styles.Muted.Render("No publications yet. Upload one with: folio upload <file.pdf>"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.pubs) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderPublication(i, &v.pubs[i]))
		b.WriteString("\n")
	}

	if len(v.pubs) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.pubs)),
			len(v.pubs))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderPublication renders a single listing line.
func (v *View) renderPublication(index int, pub *domain.Publication) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	title := pub.Title
	if title == "" {
		title = pub.ID
	}
	maxTitleLen := v.width/2 - 4
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	meta := fmt.Sprintf("%3d pages  %5d views", pub.PageCount, pub.Stats.Views)

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s  %s",
			indicator, maxTitleLen, title, v.statusLabel(pub), meta))
	}

	return v.styles.Normal.Render(indicator+fmt.Sprintf("%-*s  ", maxTitleLen, title)) +
		v.renderStatusBadge(pub) +
		v.styles.Muted.Render("  "+meta)
}

// statusLabel returns the effective status text for a publication.
func (v *View) statusLabel(pub *domain.Publication) string {
	status := pub.EffectiveStatus(time.Now())
	if status == domain.StatusScheduled && pub.ScheduledAt != nil {
		return fmt.Sprintf("scheduled %s", pub.ScheduledAt.Format("2006-01-02 15:04"))
	}
	return string(status)
}

// renderStatusBadge renders the coloured status badge.
func (v *View) renderStatusBadge(pub *domain.Publication) string {
	label := v.statusLabel(pub)
	switch pub.EffectiveStatus(time.Now()) {
	case domain.StatusPublished:
		return v.styles.Success.Render(label)
	case domain.StatusScheduled:
		return v.styles.Warning.Render(label)
	default:
		return v.styles.Muted.Render(label)
	}
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] read  [p] publish  [u] unpublish  [s] share  [x] delete  [r] reload  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Publications returns the current listing.
func (v *View) Publications() []domain.Publication {
	return v.pubs
}

// SelectedIndex returns the currently selected index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedPublication returns the currently selected publication.
func (v *View) SelectedPublication() *domain.Publication {
	if v.selected < len(v.pubs) {
		return &v.pubs[v.selected]
	}
	return nil
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
