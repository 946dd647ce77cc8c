package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalid marks input that fails validation.
	ErrInvalid = errors.New("invalid input")
	// ErrConflict indicates the entity already exists.
	ErrConflict = errors.New("already exists")
	// ErrReadOnly is returned by stores that cannot be written, such as the compiled bundle.
	ErrReadOnly = errors.New("store is read-only")
	// ErrLoad wraps failures to load or parse map data.
	ErrLoad = errors.New("load map data")
)
