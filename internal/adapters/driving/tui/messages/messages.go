// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"image"

	"github.com/foliolabs/folio-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLibrary is the publication library list.
	ViewLibrary ViewType = iota
	// ViewViewer is the flipbook reading view.
	ViewViewer
	// ViewShare is the share URL / QR code view.
	ViewShare
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLibrary:
		return "library"
	case ViewViewer:
		return "viewer"
	case ViewShare:
		return "share"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// PublicationsLoaded carries the library listing from the service.
type PublicationsLoaded struct {
	Publications []domain.Publication
	Err          error
}

// PublicationSelected signals a publication was chosen for reading.
type PublicationSelected struct {
	Publication domain.Publication
}

// ShareRequested signals a publication was chosen for sharing.
type ShareRequested struct {
	Publication domain.Publication
}

// StatusUpdated signals a publish/unpublish action completed.
type StatusUpdated struct {
	ID     string
	Status domain.Status
	Err    error
}

// PublicationDeleted signals a delete action completed.
type PublicationDeleted struct {
	ID  string
	Err error
}

// DocumentOpened reports the result of opening a publication's PDF.
// Session identifies the viewer mount the open belongs to; results from
// an earlier session are stale and must be discarded.
type DocumentOpened struct {
	Session   int
	Document  interface{} // driven.Document
	PageCount int
	Aspect    float64
	Err       error
}

// PageRendered carries one rasterized page, already downsampled to the
// layout's per-page box.
type PageRendered struct {
	Session int
	Index   int
	Image   image.Image
	Err     error
}

// TurnFinished fires when a page-turn animation completes.
type TurnFinished struct {
	Session int
}

// ResizeSettled fires when the resize debounce window elapses with no
// further size changes. Generation pairs it with the latest resize.
type ResizeSettled struct {
	Generation int
}

// DownloadFinished reports the result of saving the original PDF.
type DownloadFinished struct {
	Path string
	Err  error
}

// ShareCodeLoaded carries the share URL and its terminal QR rendering.
type ShareCodeLoaded struct {
	ID    string
	URL   string
	Cells string
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
