package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

const backendFile = "file"

// FileStore keeps documents as files under a root directory.
type FileStore struct {
	root   string
	logger logger.Logger
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string, opts ...Option) *FileStore {
	s := newSettings(opts)
	return &FileStore{root: dir, logger: s.logger}
}

func (s *FileStore) path(key string) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", fmt.Errorf("key %q: %w", key, err)
	}
	return filepath.Join(s.root, filepath.FromSlash(k)), nil
}

// Load reads the file behind key.
func (s *FileStore) Load(ctx context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		metrics.RecordStorageOperation(backendFile, "load", "not_found")
		return nil, fmt.Errorf("load %s: %w", key, ErrNotFound)
	case err != nil:
		metrics.RecordStorageOperation(backendFile, "load", "error")
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	metrics.RecordStorageOperation(backendFile, "load", "ok")
	return data, nil
}

// Save writes data to a temporary file and renames it over the target.
func (s *FileStore) Save(ctx context.Context, key string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.write(p, data); err != nil {
		metrics.RecordStorageOperation(backendFile, "save", "error")
		s.logger.Error(ctx, "save failed", logger.String("key", key), logger.Error(err))
		return fmt.Errorf("save %s: %w", key, err)
	}
	metrics.RecordStorageOperation(backendFile, "save", "ok")
	return nil
}

func (s *FileStore) write(p string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), "."+filepath.Base(p)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success
	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error wins
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// List walks the root and returns the keys of regular files under prefix.
// A missing root lists nothing.
func (s *FileStore) List(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.Trim(prefix, "/")
	var keys []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix == "" || key == prefix || strings.HasPrefix(key, prefix+"/") {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		metrics.RecordStorageOperation(backendFile, "list", "error")
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	metrics.RecordStorageOperation(backendFile, "list", "ok")
	sort.Strings(keys)
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}
