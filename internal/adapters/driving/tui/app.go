package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/views/library"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/views/share"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/views/viewer"
	"github.com/foliolabs/folio-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles, themed from branding.
	styles *styles.Styles

	// keys holds the keybindings shared by all views.
	keys *keymap.KeyMap

	// libraryView lists publications.
	libraryView *library.View

	// viewerView is the flipbook reading view.
	viewerView *viewer.View

	// shareView shows the share URL and QR code.
	shareView *share.View

	// selectedPublication tracks the publication being read or shared.
	selectedPublication *domain.Publication

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.StylesFromBranding(ports.Branding)
	keys := keymap.DefaultKeyMap()
	libraryView := library.NewView(s, keys, ports.Publications)
	viewerView := viewer.NewView(s, keys, ports.Branding, ports.Publications, ports.Blobs, ports.Renderer)
	shareView := share.NewView(s, keys, ports.Share, ports.Publications)

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keys:        keys,
		libraryView: libraryView,
		viewerView:  viewerView,
		shareView:   shareView,
		currentView: messages.ViewLibrary,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	logo := a.ports.Branding.LogoText
	if logo == "" {
		logo = "folio"
	}
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle(logo+" - Publications"),
		a.libraryView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing. The viewer owns its own
		// debounce, so it gets the raw message.
		a.libraryView.SetDimensions(msg.Width, msg.Height)
		a.shareView.SetDimensions(msg.Width, msg.Height)
		a.viewerView, cmd = a.viewerView.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			a.viewerView.Close()
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewLibrary:
			a.libraryView, cmd = a.libraryView.Update(msg)
			return a, cmd
		case messages.ViewViewer:
			a.viewerView, cmd = a.viewerView.Update(msg)
			return a, cmd
		case messages.ViewShare:
			a.shareView, cmd = a.shareView.Update(msg)
			return a, cmd
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewLibrary
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case tea.MouseMsg:
		if a.currentView == messages.ViewViewer {
			a.viewerView, cmd = a.viewerView.Update(msg)
			return a, cmd
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewLibrary {
			return a, a.libraryView.Init()
		}
		return a, nil

	case messages.PublicationSelected:
		a.selectedPublication = &msg.Publication
		a.currentView = messages.ViewViewer
		return a, a.viewerView.SetPublication(msg.Publication)

	case messages.ShareRequested:
		a.selectedPublication = &msg.Publication
		a.currentView = messages.ViewShare
		return a, a.shareView.SetPublication(msg.Publication)

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewLibrary:
			a.libraryView, cmd = a.libraryView.Update(msg)
		case messages.ViewViewer, messages.ViewShare, messages.ViewHelp:
			// The viewer and share views keep their own error state.
		}
		return a, cmd

	case messages.Quit:
		a.viewerView.Close()
		return a, tea.Quit
	}

	// Forward other messages to the view that owns them.
	switch msg.(type) {
	case messages.PublicationsLoaded, messages.StatusUpdated, messages.PublicationDeleted:
		a.libraryView, cmd = a.libraryView.Update(msg)
		return a, cmd
	case messages.ShareCodeLoaded:
		a.shareView, cmd = a.shareView.Update(msg)
		return a, cmd
	}

	// Async viewer messages carry their own session stamps and are safe to
	// deliver regardless of the active view.
	a.viewerView, cmd = a.viewerView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewLibrary:
		return a.libraryView.View()
	case messages.ViewViewer:
		return a.viewerView.View()
	case messages.ViewShare:
		return a.shareView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.libraryView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Library:
  j/k, ↑/↓    Navigate publications
  enter       Open the reader
  p / u       Publish / revert to draft
  s           Share (QR code)
  x           Delete
  q           Quit

Reader:
  →/l/space   Next page
  ←/h         Previous page
  g / G       Cover / last page
  +/-/0       Zoom in / out / reset
  arrows      Pan (while zoomed)
  f           Fullscreen
  d           Download original PDF
  esc         Back to library

[esc] back to library`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SelectedPublication returns the publication being read or shared.
func (a *App) SelectedPublication() *domain.Publication {
	return a.selectedPublication
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.libraryView.SetDimensions(width, height)
	a.viewerView.SetDimensions(width, height)
	a.shareView.SetDimensions(width, height)
}
