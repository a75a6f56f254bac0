// Package tui provides the interactive terminal interface for folio: the
// publication library, the flipbook viewer and the share screen. It is a
// driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/foliolabs/folio-cli/internal/core/domain"
	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
	"github.com/foliolabs/folio-cli/internal/core/ports/driving"
)

// Ports aggregates everything the TUI needs from the core.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Publications manages the publication catalogue.
	Publications driving.PublicationService

	// Share builds share URLs and QR codes.
	Share driving.ShareService

	// Renderer rasterizes PDF pages for the viewer.
	Renderer driven.DocumentRenderer

	// Blobs resolves document URLs to local files and serves raw bytes.
	Blobs driven.BlobStore

	// Branding customises the theme. Zero value falls back to defaults.
	Branding domain.Branding
}

// NewPorts creates a Ports aggregate with the given services.
func NewPorts(
	publications driving.PublicationService,
	share driving.ShareService,
	renderer driven.DocumentRenderer,
	blobs driven.BlobStore,
) *Ports {
	return &Ports{
		Publications: publications,
		Share:        share,
		Renderer:     renderer,
		Blobs:        blobs,
		Branding:     domain.DefaultBranding(),
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Publications == nil {
		return ErrMissingPublicationService
	}
	if p.Renderer == nil {
		return ErrMissingRenderer
	}
	if p.Blobs == nil {
		return ErrMissingBlobStore
	}
	return nil
}
