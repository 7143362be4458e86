package core

import "errors"

var (
	// ErrNotExist is returned when no object exists at the requested
	// location. Check for it with errors.Is.
	ErrNotExist = errors.New("object does not exist")

	// ErrInvalidConfig is returned at construction time when a malformed
	// configuration is supplied.
	ErrInvalidConfig = errors.New("invalid configuration")
)
