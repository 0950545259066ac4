package season

import (
	"github.com/okian/gridiron/internal/domain/standings"
	"github.com/okian/gridiron/pkg/logger"
)

// Default league settings used when a league document leaves them unset.
const (
	DefaultPlayoffWeekStart = 15
	DefaultLastScoredLeg    = 17
)

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger used for absorbed data problems.
func WithLogger(l logger.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCache sets the snapshot cache shared across runs.
func WithCache(c standings.Cache) Option {
	return func(a *Aggregator) {
		if c != nil {
			a.cache = c
		}
	}
}

// WithDefaults overrides the settings used when a league leaves them unset.
func WithDefaults(playoffWeekStart, lastScoredLeg int) Option {
	return func(a *Aggregator) {
		if playoffWeekStart > 0 {
			a.playoffWeekStart = playoffWeekStart
		}
		if lastScoredLeg > 0 {
			a.lastScoredLeg = lastScoredLeg
		}
	}
}
