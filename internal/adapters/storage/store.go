// Package storage is the key/value boundary for raw and derived league data.
//
// Keys are slash separated paths such as "2023/week_1/matchups.json".
package storage

import (
	"context"
	"path"
	"strings"
)

// Store loads and saves opaque documents by key.
type Store interface {
	// Load returns the document stored under key.
	// Returns ErrNotFound if nothing is stored there.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores data under key, replacing any previous document.
	Save(ctx context.Context, key string, data []byte) error

	// List returns every key under prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Join builds a key from parts.
func Join(parts ...string) string {
	return strings.TrimPrefix(path.Join(parts...), "/")
}

// cleanKey rejects keys that would escape the store root.
func cleanKey(key string) (string, error) {
	k := path.Clean("/" + strings.TrimSpace(key))
	k = strings.TrimPrefix(k, "/")
	if k == "" || k == "." || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return k, nil
}
