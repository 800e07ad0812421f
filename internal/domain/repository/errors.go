package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint on username or email
	// rejects the write.
	ErrDuplicate = errors.New("duplicate")
)
