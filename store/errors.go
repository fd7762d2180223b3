package store

import "errors"

var (
	// ErrNotFound indicates no cached entry exists for the key.
	ErrNotFound = errors.New("store: not found")

	// ErrNilParam indicates a required parameter was nil or empty.
	ErrNilParam = errors.New("store: nil parameter")
)
