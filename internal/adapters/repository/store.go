// Package repository holds the read model of the latest completed run.
package repository

import (
	"context"
	"time"

	"github.com/okian/gridiron/internal/domain/alltime"
	"github.com/okian/gridiron/internal/domain/season"
	"github.com/okian/gridiron/internal/domain/standings"
)

// Run is one completed run's derived data.
type Run struct {
	ID         string
	Reports    []*season.Report
	AllTime    *alltime.Result
	HighScores alltime.HighScoreTables
	Failed     map[string]string
}

// RunInfo describes the published run.
type RunInfo struct {
	ID          string            `json:"run_id"`
	PublishedAt time.Time         `json:"published_at"`
	Seasons     []string          `json:"seasons"`
	Failed      map[string]string `json:"failed_seasons"`
	Managers    int               `json:"managers"`
}

// Store provides read access to the latest run.
type Store interface {
	// Publish replaces the current run atomically.
	Publish(ctx context.Context, run Run) error

	// Info describes the current run. Returns ErrNotPublished before the first run.
	Info(ctx context.Context) (RunInfo, error)

	// Season returns one season's report.
	// Returns ErrNotFound if the season is unknown.
	Season(ctx context.Context, season string) (*season.Report, error)

	// Week returns one regular-season week recap.
	Week(ctx context.Context, season string, week int) (season.WeekRecap, error)

	// Standings returns a season's final standings.
	Standings(ctx context.Context, season string) ([]standings.Row, error)

	// AllTime returns the cross-season result.
	AllTime(ctx context.Context) (*alltime.Result, error)

	// Manager returns one manager's career line.
	Manager(ctx context.Context, ownerID string) (alltime.ManagerStats, error)

	// HighScores returns the all-time high-score tables.
	HighScores(ctx context.Context) (alltime.HighScoreTables, error)
}
