package storage

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrNotFound   = errors.New("document not found")
	ErrInvalidKey = errors.New("invalid storage key")
)
