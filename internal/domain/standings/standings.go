// Package standings accumulates cumulative win/loss records week by week.
//
// A Snapshot is never mutated once returned: Advance copies its input and
// applies one week. Folding Advance over weeks 1..n from an empty seed gives
// the same snapshot as Accumulate over the same weeks, so a cached snapshot
// for week n-1 can stand in for recomputing weeks 1..n-1.
package standings

import (
	"fmt"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/types"
)

// State of a snapshot.
type State int

// States.
const (
	Empty State = iota
	Partial
	Final
)

func (s State) String() string {
	switch s {
	case Partial:
		return "partial"
	case Final:
		return "final"
	default:
		return "empty"
	}
}

// Record holds one roster's running totals.
type Record struct {
	RosterID      int
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	Transactions  int
}

// Games is the number of scored games.
func (r Record) Games() int { return r.Wins + r.Losses + r.Ties }

// WinFraction is wins over games, 0 before the first game.
func (r Record) WinFraction() float64 { return types.Fraction(r.Wins, r.Games()) }

// Week is one week of input to Advance.
type Week struct {
	Number       int
	Entries      []model.MatchupEntry
	Transactions []model.Transaction
}

// Snapshot is the standings after some week.
type Snapshot struct {
	week    int
	state   State
	order   []int
	records map[int]Record
}

// Seed returns an empty snapshot holding zeroed records for the given rosters.
// Only seeded rosters, and rosters that have played, collect transactions.
func Seed(rosterIDs []int) *Snapshot {
	s := &Snapshot{records: make(map[int]Record, len(rosterIDs))}
	for _, id := range rosterIDs {
		s.ensure(id)
	}
	return s
}

// Week returns the last week applied, 0 when empty.
func (s *Snapshot) Week() int { return s.week }

// State returns the snapshot state.
func (s *Snapshot) State() State { return s.state }

// Record returns the record of one roster.
func (s *Snapshot) Record(rosterID int) (Record, bool) {
	r, ok := s.records[rosterID]
	return r, ok
}

// Records returns every record in roster order: seeded rosters first, then
// rosters in the order they first played.
func (s *Snapshot) Records() []Record {
	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

func (s *Snapshot) ensure(id int) {
	if _, ok := s.records[id]; ok {
		return
	}
	s.order = append(s.order, id)
	s.records[id] = Record{RosterID: id}
}

func (s *Snapshot) clone() *Snapshot {
	c := &Snapshot{
		week:    s.week,
		state:   s.state,
		order:   append([]int(nil), s.order...),
		records: make(map[int]Record, len(s.records)),
	}
	for id, r := range s.records {
		c.records[id] = r
	}
	return c
}

// Advance applies one week to prev and returns the new snapshot. A nil prev
// is an empty snapshot. prev is left untouched.
func Advance(prev *Snapshot, week Week) (*Snapshot, error) {
	if prev == nil {
		prev = Seed(nil)
	}
	if prev.state == Final {
		return nil, fmt.Errorf("advance to week %d: %w", week.Number, ErrFinal)
	}
	if week.Number <= prev.week {
		return nil, fmt.Errorf("week %d after week %d: %w", week.Number, prev.week, ErrWeekOrder)
	}

	next := prev.clone()
	pairs, _ := model.Pairs(week.Entries)
	for _, p := range pairs {
		next.apply(p.Home, p.Away)
	}
	for _, t := range week.Transactions {
		if !t.Complete() {
			continue
		}
		for _, id := range t.RosterIDs {
			if r, ok := next.records[id]; ok {
				r.Transactions++
				next.records[id] = r
			}
		}
	}
	next.week = week.Number
	next.state = Partial
	return next, nil
}

func (s *Snapshot) apply(a, b model.MatchupEntry) {
	s.ensure(a.RosterID)
	s.ensure(b.RosterID)
	ra, rb := s.records[a.RosterID], s.records[b.RosterID]

	ra.PointsFor += a.Points
	ra.PointsAgainst += b.Points
	rb.PointsFor += b.Points
	rb.PointsAgainst += a.Points

	switch {
	case a.Points > b.Points:
		ra.Wins++
		rb.Losses++
	case b.Points > a.Points:
		ra.Losses++
		rb.Wins++
	default:
		ra.Ties++
		rb.Ties++
	}

	s.records[a.RosterID], s.records[b.RosterID] = ra, rb
}

// Finalize marks the snapshot as the last of its season.
func Finalize(s *Snapshot) *Snapshot {
	if s == nil {
		s = Seed(nil)
	}
	f := s.clone()
	f.state = Final
	return f
}

// Accumulate folds weeks over a seeded snapshot in one pass.
func Accumulate(rosterIDs []int, weeks []Week) (*Snapshot, error) {
	s := Seed(rosterIDs)
	for _, w := range weeks {
		next, err := Advance(s, w)
		if err != nil {
			return nil, err
		}
		s = next
	}
	return s, nil
}
