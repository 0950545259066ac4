package source

import "github.com/okian/gridiron/pkg/logger"

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the provider logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithPlayersKey overrides the key of the player catalogue.
func WithPlayersKey(key string) Option {
	return func(p *Provider) {
		if key != "" {
			p.playersKey = key
		}
	}
}
