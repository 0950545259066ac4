// Package config defines process configuration and its loading.
package config

import "slices"

// Storage backends.
const (
	BackendFile = "file"
	BackendS3   = "s3"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: json or text.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Serve keeps the process running after the batch to serve the read API.
	Serve bool `koanf:"serve"`

	// StorageBackend is file or s3.
	StorageBackend string `koanf:"storage_backend"`

	// RawRoot and OutputRoot are directories for the file backend and key
	// prefixes under S3Prefix for the s3 backend.
	RawRoot    string `koanf:"raw_root"`
	OutputRoot string `koanf:"output_root"`

	S3Bucket          string `koanf:"s3_bucket"`
	S3Region          string `koanf:"s3_region"`
	S3Prefix          string `koanf:"s3_prefix"`
	S3Endpoint        string `koanf:"s3_endpoint"`
	S3AccessKeyID     string `koanf:"s3_access_key_id"`
	S3SecretAccessKey string `koanf:"s3_secret_access_key"`

	// Seasons restricts the run to these season directories. Empty means
	// every season found under RawRoot.
	Seasons []string `koanf:"seasons"`

	// Fallbacks for leagues whose settings omit them.
	DefaultPlayoffWeekStart int `koanf:"default_playoff_week_start"`
	DefaultLastScoredLeg    int `koanf:"default_last_scored_leg"`

	// HighScoreLimit bounds the all-time high-score tables.
	HighScoreLimit int `koanf:"high_score_limit"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		LogFormat:               "json",
		Addr:                    ":9080",
		StorageBackend:          BackendFile,
		RawRoot:                 "data/raw",
		OutputRoot:              "data/processed",
		S3Region:                "us-east-1",
		DefaultPlayoffWeekStart: 15,
		DefaultLastScoredLeg:    17,
		HighScoreLimit:          10,
	}
}

// WantsSeason reports whether season is part of the configured run.
func (c *Config) WantsSeason(season string) bool {
	return len(c.Seasons) == 0 || slices.Contains(c.Seasons, season)
}
