// Package lineup builds position-indexed lineups that maximise or minimise
// total points under a roster template.
//
// The fill is greedy and runs in a fixed order: QB, RB, WR, TE, FLEX, K, DEF.
// FLEX slots are resolved only after the fixed RB/WR/TE slots, so a FLEX pick
// never displaces a fixed slot. This makes the result the best (or worst)
// total reachable under that order, which is not always the global optimum:
// a player placed in a fixed slot cannot later be moved to FLEX to free the
// fixed slot for someone better.
package lineup

import (
	"sort"

	"github.com/okian/gridiron/internal/domain/position"
	"github.com/okian/gridiron/pkg/metrics"
)

// Direction selects whether the lineup maximises or minimises the total.
type Direction int

// Directions.
const (
	Max Direction = iota
	Min
)

func (d Direction) String() string {
	if d == Min {
		return "min"
	}
	return "max"
}

// Score is one candidate's points. Order in the input slice is the tie-break.
type Score struct {
	PlayerID string
	Points   float64
}

// Pick is a player placed in a slot.
type Pick struct {
	PlayerID string  `json:"player_id"`
	Points   float64 `json:"points"`
}

// Slot is a labelled lineup position; Pick is nil when the slot stayed empty.
type Slot struct {
	Label    string            `json:"slot"`
	Category position.Category `json:"category"`
	Pick     *Pick             `json:"pick"`
}

// Lineup is an ordered list of slots.
type Lineup struct {
	Slots []Slot `json:"slots"`
}

// Total sums the points of every filled slot.
func (l Lineup) Total() float64 {
	var total float64
	for _, s := range l.Slots {
		if s.Pick != nil {
			total += s.Pick.Points
		}
	}
	return total
}

// Get returns the pick in the slot with the given label.
func (l Lineup) Get(label string) (Pick, bool) {
	for _, s := range l.Slots {
		if s.Label == label && s.Pick != nil {
			return *s.Pick, true
		}
	}
	return Pick{}, false
}

// Players returns the ids placed in the lineup, in slot order.
func (l Lineup) Players() []string {
	ids := make([]string, 0, len(l.Slots))
	for _, s := range l.Slots {
		if s.Pick != nil {
			ids = append(ids, s.Pick.PlayerID)
		}
	}
	return ids
}

// Filled returns the number of non-empty slots.
func (l Lineup) Filled() int { return len(l.Players()) }

type candidate struct {
	id     string
	points float64
}

// Build constructs a lineup from scores under tmpl.
//
// Candidates in excluded, and candidates with no known category, are dropped.
// In Max mode a candidate scoring 0 or less is dropped unless it is DEF
// eligible; Min mode keeps every candidate. A candidate is placed at most once
// and a slot whose bucket runs out stays empty.
func Build(scores []Score, tmpl position.Template, elig position.Eligibility, excluded map[string]bool, dir Direction) Lineup {
	metrics.RecordLineupBuild(dir.String())

	buckets := make(map[position.Category][]candidate, len(position.FillOrder))
	seen := make(map[string]bool, len(scores))
	for _, s := range scores {
		if seen[s.PlayerID] || excluded[s.PlayerID] {
			continue
		}
		seen[s.PlayerID] = true
		cats := elig.Of(s.PlayerID)
		if len(cats) == 0 {
			continue
		}
		if dir == Max && s.Points <= 0 && !cats.Has(position.DEF) {
			continue
		}
		for _, c := range position.FillOrder {
			if cats.Eligible(c) {
				buckets[c] = append(buckets[c], candidate{id: s.PlayerID, points: s.Points})
			}
		}
	}

	for c := range buckets {
		b := buckets[c]
		sort.SliceStable(b, func(i, j int) bool {
			if dir == Min {
				return b[i].points < b[j].points
			}
			return b[i].points > b[j].points
		})
	}

	used := make(map[string]bool, tmpl.Size())
	out := Lineup{Slots: make([]Slot, 0, tmpl.Size())}
	for _, c := range position.FillOrder {
		n := tmpl.Count(c)
		bucket := buckets[c]
		next := 0
		for i := 1; i <= n; i++ {
			slot := Slot{Label: position.SlotLabel(c, i, n), Category: c}
			for next < len(bucket) && used[bucket[next].id] {
				next++
			}
			if next < len(bucket) {
				pick := bucket[next]
				used[pick.id] = true
				slot.Pick = &Pick{PlayerID: pick.id, Points: pick.points}
				next++
			}
			out.Slots = append(out.Slots, slot)
		}
	}
	return out
}
