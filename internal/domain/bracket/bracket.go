// Package bracket resolves playoff bracket nodes into named matches.
//
// A node names its teams directly or through another match's winner or
// loser. Nodes are kept in a table keyed by match id and resolved lazily
// with memoization; a reference to a match that has not been decided
// resolves to TBD.
package bracket

import (
	"fmt"
	"sort"

	"github.com/okian/gridiron/internal/domain/model"
)

// TBD labels a team that is not known yet.
const TBD = "TBD"

// Namer returns the team label of a roster.
type Namer func(rosterID int) string

// Side is one team slot of a match. Source is "winner" or "loser" when the
// slot is fed by match SourceOf.
type Side struct {
	RosterID *int   `json:"roster_id"`
	TeamName string `json:"team_name"`
	Source   string `json:"source,omitempty"`
	SourceOf int    `json:"source_match,omitempty"`
}

// Known reports whether the slot names a roster.
func (s Side) Known() bool { return s.RosterID != nil }

// Match is a resolved bracket node.
type Match struct {
	Round  int   `json:"round"`
	Match  int   `json:"match"`
	Team1  Side  `json:"team1"`
	Team2  Side  `json:"team2"`
	Winner *Side `json:"winner,omitempty"`
	Loser  *Side `json:"loser,omitempty"`
	Place  *int  `json:"place,omitempty"`
}

// Decided reports whether the match has a winner.
func (m Match) Decided() bool { return m.Winner != nil }

type resolver struct {
	nodes    map[int]model.BracketNode
	names    Namer
	done     map[int]Match
	visiting map[int]bool
}

// Resolve resolves every node, returning matches in input order.
// A node id seen twice keeps its first definition.
func Resolve(nodes []model.BracketNode, names Namer) ([]Match, error) {
	r := &resolver{
		nodes:    make(map[int]model.BracketNode, len(nodes)),
		names:    names,
		done:     make(map[int]Match, len(nodes)),
		visiting: make(map[int]bool),
	}
	order := make([]int, 0, len(nodes))
	for _, n := range nodes {
		if _, dup := r.nodes[n.Match]; dup {
			continue
		}
		r.nodes[n.Match] = n
		order = append(order, n.Match)
	}

	out := make([]Match, 0, len(order))
	for _, id := range order {
		m, err := r.resolve(id)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *resolver) resolve(id int) (Match, error) {
	if m, ok := r.done[id]; ok {
		return m, nil
	}
	n, ok := r.nodes[id]
	if !ok {
		return Match{}, fmt.Errorf("match %d: %w", id, ErrUnknownNode)
	}
	if r.visiting[id] {
		return Match{}, fmt.Errorf("match %d: %w", id, ErrCycle)
	}
	r.visiting[id] = true
	defer delete(r.visiting, id)

	t1, err := r.side(n.T1, n.T1From)
	if err != nil {
		return Match{}, err
	}
	t2, err := r.side(n.T2, n.T2From)
	if err != nil {
		return Match{}, err
	}

	m := Match{Round: n.Round, Match: n.Match, Team1: t1, Team2: t2, Place: n.Place}
	if n.Winner != nil {
		w := r.direct(*n.Winner)
		m.Winner = &w
	}
	if n.Loser != nil {
		l := r.direct(*n.Loser)
		m.Loser = &l
	}
	r.done[id] = m
	return m, nil
}

func (r *resolver) direct(rosterID int) Side {
	id := rosterID
	return Side{RosterID: &id, TeamName: r.names(rosterID)}
}

func (r *resolver) side(team *int, from *model.BracketRef) (Side, error) {
	if team != nil {
		return r.direct(*team), nil
	}
	if from == nil {
		return Side{TeamName: TBD}, nil
	}

	ref, source := from.Winner, "winner"
	if ref == nil {
		ref, source = from.Loser, "loser"
	}
	if ref == nil {
		return Side{TeamName: TBD}, nil
	}

	upstream, err := r.resolve(*ref)
	if err != nil {
		return Side{}, err
	}
	pick := upstream.Winner
	if source == "loser" {
		pick = upstream.Loser
	}
	s := Side{TeamName: TBD, Source: source, SourceOf: *ref}
	if pick != nil {
		s.RosterID, s.TeamName = pick.RosterID, pick.TeamName
	}
	return s, nil
}

// Round is the matches of one bracket round.
type Round struct {
	Number  int     `json:"round"`
	Matches []Match `json:"matches"`
}

// ByRound groups matches by round ascending, ordering each round by match id.
func ByRound(matches []Match) []Round {
	index := make(map[int]int)
	var rounds []Round
	for _, m := range matches {
		i, ok := index[m.Round]
		if !ok {
			i = len(rounds)
			index[m.Round] = i
			rounds = append(rounds, Round{Number: m.Round})
		}
		rounds[i].Matches = append(rounds[i].Matches, m)
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].Number < rounds[j].Number })
	for _, rd := range rounds {
		sort.SliceStable(rd.Matches, func(i, j int) bool { return rd.Matches[i].Match < rd.Matches[j].Match })
	}
	return rounds
}

// Champion returns the winner of the first-place game, if decided.
func Champion(matches []Match) (Side, bool) {
	for _, m := range matches {
		if m.Place != nil && *m.Place == 1 && m.Winner != nil {
			return *m.Winner, true
		}
	}
	return Side{}, false
}
