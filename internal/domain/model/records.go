// Package model contains the raw league records passed between layers.
// Field tags mirror the upstream league API documents.
package model

import "sort"

// TransactionComplete is the status of a transaction that was processed.
const TransactionComplete = "complete"

// MatchupEntry is one roster's raw result for one week.
type MatchupEntry struct {
	RosterID       int                `json:"roster_id"`
	MatchupID      int                `json:"matchup_id"` // 0 when the roster has a bye
	Points         float64            `json:"points"`
	Starters       []string           `json:"starters"`
	Players        []string           `json:"players"`
	PlayersPoints  map[string]float64 `json:"players_points"`
	StartersPoints []float64          `json:"starters_points"`
}

// PlayerPoints returns the points a player scored for this roster, 0 if absent.
func (e MatchupEntry) PlayerPoints(playerID string) float64 {
	return e.PlayersPoints[playerID]
}

// StartedTotal returns the points credited to the started lineup.
// StartersPoints wins when present; otherwise starters are summed from PlayersPoints.
func (e MatchupEntry) StartedTotal() float64 {
	var total float64
	if e.StartersPoints != nil {
		for _, p := range e.StartersPoints {
			total += p
		}
		return total
	}
	for _, id := range e.Starters {
		total += e.PlayersPoints[id]
	}
	return total
}

// IsStarter reports whether playerID is in the started lineup.
func (e MatchupEntry) IsStarter(playerID string) bool {
	for _, id := range e.Starters {
		if id == playerID {
			return true
		}
	}
	return false
}

// Bench returns the rostered players that did not start, sorted by id.
func (e MatchupEntry) Bench() []string {
	started := make(map[string]bool, len(e.Starters))
	for _, id := range e.Starters {
		started[id] = true
	}
	bench := make([]string, 0, len(e.Players))
	for _, id := range e.Players {
		if !started[id] {
			bench = append(bench, id)
		}
	}
	sort.Strings(bench)
	return bench
}

// OrderedPlayers returns every player with points for this roster in a stable
// order: the rostered order first, then any remaining scored ids sorted.
func (e MatchupEntry) OrderedPlayers() []string {
	seen := make(map[string]bool, len(e.PlayersPoints))
	out := make([]string, 0, len(e.PlayersPoints))
	for _, id := range e.Players {
		if _, ok := e.PlayersPoints[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	extra := make([]string, 0)
	for id := range e.PlayersPoints {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// Transaction is a waiver, free agent or trade move.
type Transaction struct {
	ID        string         `json:"transaction_id"`
	Type      string         `json:"type"`
	Status    string         `json:"status"`
	RosterIDs []int          `json:"roster_ids"`
	Adds      map[string]int `json:"adds"`
	Drops     map[string]int `json:"drops"`
	Created   int64          `json:"created"` // unix milliseconds
	Creator   string         `json:"creator"`
}

// Complete reports whether the transaction counts toward standings.
func (t Transaction) Complete() bool { return t.Status == TransactionComplete }

// Roster links a roster id to its owning user for one season.
type Roster struct {
	RosterID int    `json:"roster_id"`
	OwnerID  string `json:"owner_id"`
}

// Owner is a league member's display record.
type Owner struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Metadata    struct {
		TeamName string `json:"team_name"`
	} `json:"metadata"`
}

// Player is the subset of the player catalogue the engines need.
type Player struct {
	FullName         string   `json:"full_name"`
	FantasyPositions []string `json:"fantasy_positions"`
}

// Players is the player catalogue keyed by player id.
type Players map[string]Player

// Settings holds the league settings that shape a season.
type Settings struct {
	PlayoffWeekStart int `json:"playoff_week_start"`
	LastScoredLeg    int `json:"last_scored_leg"`
}

// League is the league-season document.
type League struct {
	LeagueID        string   `json:"league_id"`
	Name            string   `json:"name"`
	Season          string   `json:"season"`
	Settings        Settings `json:"settings"`
	RosterPositions []string `json:"roster_positions"`
}

// BracketRef points at another bracket node's winner or loser.
type BracketRef struct {
	Winner *int `json:"w,omitempty"`
	Loser  *int `json:"l,omitempty"`
}

// BracketNode is one playoff bracket game.
type BracketNode struct {
	Round  int         `json:"r"`
	Match  int         `json:"m"`
	T1     *int        `json:"t1"`
	T2     *int        `json:"t2"`
	T1From *BracketRef `json:"t1_from,omitempty"`
	T2From *BracketRef `json:"t2_from,omitempty"`
	Winner *int        `json:"w"`
	Loser  *int        `json:"l"`
	Place  *int        `json:"p,omitempty"`
}

// DraftPick is a single selection.
type DraftPick struct {
	PickedBy string `json:"picked_by"`
	PlayerID string `json:"player_id"`
	Round    int    `json:"round"`
	PickNo   int    `json:"pick_no"`
	Position string `json:"position"`
	Metadata struct {
		Position string `json:"position"`
	} `json:"metadata"`
}

// PickPosition prefers the position stamped on the pick metadata.
func (p DraftPick) PickPosition() string {
	if p.Metadata.Position != "" {
		return p.Metadata.Position
	}
	return p.Position
}

// Draft is one draft of a season.
type Draft struct {
	DraftID    string         `json:"draft_id"`
	DraftOrder map[string]int `json:"draft_order"`
	Picks      []DraftPick    `json:"picks"`
}
