package storage

import (
	"strings"

	"github.com/okian/gridiron/pkg/logger"
)

// Option configures a store.
type Option func(*settings)

type settings struct {
	logger logger.Logger
	prefix string
}

func newSettings(opts []Option) settings {
	s := settings{logger: logger.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger sets the logger used for storage operations.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPrefix nests every key under prefix. Only the S3 backend uses it; the
// file backend is rooted at its directory instead.
func WithPrefix(prefix string) Option {
	return func(s *settings) {
		s.prefix = strings.Trim(prefix, "/")
	}
}
