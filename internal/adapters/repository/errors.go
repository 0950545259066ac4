package repository

import "errors"

// Sentinel kinds for read model errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrNotPublished = errors.New("no run published yet")
)
