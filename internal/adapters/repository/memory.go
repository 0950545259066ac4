package repository

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/okian/gridiron/internal/domain/alltime"
	"github.com/okian/gridiron/internal/domain/season"
	"github.com/okian/gridiron/internal/domain/standings"
	"github.com/okian/gridiron/pkg/metrics"
)

// snapshot is an immutable published run with its lookup indexes.
type snapshot struct {
	info     RunInfo
	run      Run
	bySeason map[string]*season.Report
}

// MemoryStore keeps the latest run in memory. Readers never block: Publish
// builds a new snapshot and swaps the pointer.
type MemoryStore struct {
	current atomic.Pointer[snapshot]
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish implements Store.
func (s *MemoryStore) Publish(_ context.Context, run Run) error {
	snap := &snapshot{run: run, bySeason: make(map[string]*season.Report, len(run.Reports))}
	seasons := make([]string, 0, len(run.Reports))
	for _, r := range run.Reports {
		if r == nil {
			continue
		}
		if _, dup := snap.bySeason[r.Season]; dup {
			continue
		}
		snap.bySeason[r.Season] = r
		seasons = append(seasons, r.Season)
	}
	sort.Strings(seasons)

	failed := make(map[string]string, len(run.Failed))
	for k, v := range run.Failed {
		failed[k] = v
	}
	managers := 0
	if run.AllTime != nil {
		managers = len(run.AllTime.Managers)
	}
	snap.info = RunInfo{
		ID:          run.ID,
		PublishedAt: s.now().UTC(),
		Seasons:     seasons,
		Failed:      failed,
		Managers:    managers,
	}
	s.current.Store(snap)

	metrics.UpdateRepositoryRecords("seasons", len(seasons))
	metrics.UpdateRepositoryRecords("managers", managers)
	metrics.UpdateLastRun(snap.info.PublishedAt.Unix())
	return nil
}

func (s *MemoryStore) load() (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotPublished
	}
	return snap, nil
}

// Info implements Store.
func (s *MemoryStore) Info(_ context.Context) (RunInfo, error) {
	snap, err := s.load()
	if err != nil {
		return RunInfo{}, err
	}
	return snap.info, nil
}

// Season implements Store.
func (s *MemoryStore) Season(_ context.Context, name string) (*season.Report, error) {
	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	r, ok := snap.bySeason[name]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return nil, fmt.Errorf("season %s: %w", name, ErrNotFound)
	}
	return r, nil
}

// Week implements Store.
func (s *MemoryStore) Week(ctx context.Context, name string, week int) (season.WeekRecap, error) {
	r, err := s.Season(ctx, name)
	if err != nil {
		return season.WeekRecap{}, err
	}
	for _, w := range r.Regular {
		if w.Week == week {
			return w, nil
		}
	}
	metrics.RecordErrorByComponent("repository", "not_found")
	return season.WeekRecap{}, fmt.Errorf("season %s week %d: %w", name, week, ErrNotFound)
}

// Standings implements Store.
func (s *MemoryStore) Standings(ctx context.Context, name string) ([]standings.Row, error) {
	r, err := s.Season(ctx, name)
	if err != nil {
		return nil, err
	}
	return r.Standings, nil
}

// AllTime implements Store.
func (s *MemoryStore) AllTime(_ context.Context) (*alltime.Result, error) {
	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	if snap.run.AllTime == nil {
		return nil, fmt.Errorf("all-time result: %w", ErrNotFound)
	}
	return snap.run.AllTime, nil
}

// Manager implements Store.
func (s *MemoryStore) Manager(ctx context.Context, ownerID string) (alltime.ManagerStats, error) {
	res, err := s.AllTime(ctx)
	if err != nil {
		return alltime.ManagerStats{}, err
	}
	m, err := res.Manager(ownerID)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "not_found")
		return alltime.ManagerStats{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return m, nil
}

// HighScores implements Store.
func (s *MemoryStore) HighScores(_ context.Context) (alltime.HighScoreTables, error) {
	snap, err := s.load()
	if err != nil {
		return alltime.HighScoreTables{}, err
	}
	return snap.run.HighScores, nil
}
