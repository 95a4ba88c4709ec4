package store

import "errors"

var (
	// ErrNotFound is returned by remote operations addressed at an entity the
	// store does not hold.
	ErrNotFound = errors.New("not found")

	// ErrNoBackend is returned when a remote operation is attempted on a
	// store built without a transport.
	ErrNoBackend = errors.New("no backend configured")
)
