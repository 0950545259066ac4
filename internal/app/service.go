// Package service runs the batch: it reads every season from the raw store,
// derives the season reports and the cross-season statistics, writes them to
// the output store and publishes them to the read model.
package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/okian/gridiron/internal/adapters/export"
	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/adapters/source"
	"github.com/okian/gridiron/internal/adapters/storage"
	"github.com/okian/gridiron/internal/domain/alltime"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/season"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

const defaultHighScoreLimit = 10

// Service owns one league data pipeline.
type Service struct {
	mu sync.Mutex

	raw  storage.Store
	out  storage.Store
	repo repository.Store

	seasons        []string
	highScoreLimit int
	aggregatorOpts []season.Option
	aggregator     *season.Aggregator
	now            func() time.Time

	logger logger.Logger
}

// New constructs a Service reading from raw, writing to out and publishing
// into repo.
func New(raw, out storage.Store, repo repository.Store, opts ...Option) *Service {
	s := &Service{
		raw:            raw,
		out:            out,
		repo:           repo,
		highScoreLimit: defaultHighScoreLimit,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	// The aggregator keeps its standings cache across runs.
	s.aggregator = season.New(append([]season.Option{season.WithLogger(s.logger)}, s.aggregatorOpts...)...)
	return s
}

// Run processes every wanted season once. A season that cannot be read or
// processed is recorded in the manifest and skipped; storage write failures
// and cancellation end the run.
func (s *Service) Run(ctx context.Context) (*export.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.now()
	manifest := export.NewManifest(start)
	log := s.logger
	log.Info(ctx, "run started", logger.String("run_id", manifest.RunID))

	provider := source.New(s.raw, source.WithLogger(log))
	exporter := export.New(s.out, export.WithLogger(log))

	names, err := s.wanted(ctx, provider)
	if err != nil {
		return nil, err
	}
	players, err := provider.Players(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}

	var reports []*season.Report
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rep, err := s.season(ctx, provider, name, players)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn(ctx, "season skipped", logger.String("season", name), logger.Error(err))
			manifest.Fail(name, err)
			continue
		}
		keys, err := exporter.Season(ctx, rep)
		manifest.Add(keys...)
		if err != nil {
			return nil, fmt.Errorf("%w: season %s: %w", ErrExport, name, err)
		}
		manifest.Seasons = append(manifest.Seasons, name)
		reports = append(reports, rep)
	}
	season.SortReports(reports)

	res, tables := s.allTime(reports)
	if len(reports) > 0 {
		keys, err := exporter.AllTime(ctx, res, tables)
		manifest.Add(keys...)
		if err != nil {
			return nil, fmt.Errorf("%w: all-time: %w", ErrExport, err)
		}
	}
	if err := exporter.Manifest(ctx, manifest, s.now()); err != nil {
		return nil, fmt.Errorf("%w: manifest: %w", ErrExport, err)
	}

	run := repository.Run{
		ID:         manifest.RunID,
		Reports:    reports,
		AllTime:    res,
		HighScores: tables,
		Failed:     manifest.Failed,
	}
	if err := s.repo.Publish(ctx, run); err != nil {
		return nil, fmt.Errorf("publish run: %w", err)
	}

	metrics.RecordStageDuration("run", float64(s.now().Sub(start).Milliseconds()))
	log.Info(ctx, "run finished",
		logger.String("run_id", manifest.RunID),
		logger.Int("seasons", len(manifest.Seasons)),
		logger.Int("failed", len(manifest.Failed)),
		logger.Int("documents", len(manifest.Documents)),
	)
	return manifest, nil
}

func (s *Service) wanted(ctx context.Context, provider *source.Provider) ([]string, error) {
	found, err := provider.Seasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	names := found
	if len(s.seasons) > 0 {
		names = names[:0:0]
		for _, name := range found {
			if slices.Contains(s.seasons, name) {
				names = append(names, name)
			}
		}
		for _, name := range s.seasons {
			if !slices.Contains(found, name) {
				s.logger.Warn(ctx, "configured season not found", logger.String("season", name))
			}
		}
	}
	if len(names) == 0 {
		return nil, ErrNoSeasons
	}
	return names, nil
}

func (s *Service) season(ctx context.Context, provider *source.Provider, name string, players model.Players) (*season.Report, error) {
	in, err := provider.Season(ctx, name, players)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Process(ctx, in)
}

// allTime builds the cross-season outputs from the sorted reports.
func (s *Service) allTime(reports []*season.Report) (*alltime.Result, alltime.HighScoreTables) {
	histories := make([]alltime.Season, 0, len(reports))
	var teams []alltime.TeamScore
	var players []alltime.PlayerScore
	for _, r := range reports {
		histories = append(histories, r.AllTime())
		teams = append(teams, r.TeamScores()...)
		players = append(players, r.PlayerScores()...)
	}
	return alltime.Compute(histories), alltime.HighScores(teams, players, s.highScoreLimit)
}
