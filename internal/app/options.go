package service

import (
	"time"

	"github.com/okian/gridiron/internal/domain/season"
	"github.com/okian/gridiron/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeasons restricts runs to the listed seasons. Empty means all.
func WithSeasons(seasons []string) Option {
	return func(s *Service) {
		s.seasons = append([]string(nil), seasons...)
	}
}

// WithHighScoreLimit bounds the all-time high-score tables.
func WithHighScoreLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.highScoreLimit = n
		}
	}
}

// WithAggregatorOptions passes options to the season aggregator.
func WithAggregatorOptions(opts ...season.Option) Option {
	return func(s *Service) {
		s.aggregatorOpts = append(s.aggregatorOpts, opts...)
	}
}

// WithClock sets the clock used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
