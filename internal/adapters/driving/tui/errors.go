package tui

import "errors"

// ErrMissingPublicationService is returned when the publication service is not provided.
var ErrMissingPublicationService = errors.New("tui: publication service is required")

// ErrMissingRenderer is returned when the document renderer is not provided.
var ErrMissingRenderer = errors.New("tui: document renderer is required")

// ErrMissingBlobStore is returned when the blob store is not provided.
var ErrMissingBlobStore = errors.New("tui: blob store is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
