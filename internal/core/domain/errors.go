package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNotPublished indicates a publication is not publicly viewable.
	ErrNotPublished = errors.New("publication not published")

	// ErrInvalidDocument indicates the uploaded file is not a usable PDF.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrStoreUnavailable indicates no publication store is configured.
	ErrStoreUnavailable = errors.New("publication store unavailable")
)
