package season

import (
	"sort"

	"github.com/okian/gridiron/internal/domain/identity"
	"github.com/okian/gridiron/internal/domain/lineup"
	"github.com/okian/gridiron/internal/domain/matchup"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/types"
)

// unknownTeam labels a transaction or pick that names no roster.
const unknownTeam = "Unknown"

// PlayerLine is a player as shown in a recap.
type PlayerLine struct {
	PlayerID   string   `json:"player_id"`
	PlayerName string   `json:"player_name"`
	Points     float64  `json:"points"`
	Positions  []string `json:"positions"`
}

// MappedEntry is a matchup entry with names attached.
type MappedEntry struct {
	RosterID       int          `json:"roster_id"`
	TeamName       string       `json:"team_name"`
	Points         float64      `json:"points"`
	MatchupID      *int         `json:"matchup_id"`
	Starters       []PlayerLine `json:"starters"`
	Bench          []PlayerLine `json:"bench"`
	StartersPoints []float64    `json:"starters_points"`
}

// NamedTeam is a roster's weekly total with its label.
type NamedTeam struct {
	RosterID int     `json:"roster_id"`
	TeamName string  `json:"team_name"`
	Points   float64 `json:"points"`
}

// NamedSlot is a lineup slot with the placed player's name. An empty slot
// has no player id.
type NamedSlot struct {
	Slot string `json:"slot"`
	PlayerLine
}

// NamedLineup is a lineup ready for display.
type NamedLineup struct {
	Slots []NamedSlot `json:"slots"`
	Total float64     `json:"total_points"`
}

// EfficiencyAward is a bench efficiency record with its team label.
type EfficiencyAward struct {
	RosterID    int     `json:"roster_id"`
	TeamName    string  `json:"team_name"`
	Actual      float64 `json:"actual_score"`
	Optimal     float64 `json:"optimal_score"`
	LeftOnBench float64 `json:"points_left_on_bench"`
}

// ResultAward is a game result with both team labels.
type ResultAward struct {
	RosterID       int     `json:"roster_id"`
	TeamName       string  `json:"team_name"`
	OpponentID     int     `json:"opponent_roster_id"`
	OpponentName   string  `json:"opponent_team_name"`
	Points         float64 `json:"points"`
	OpponentPoints float64 `json:"opponent_points"`
	Margin         float64 `json:"margin"`
}

// NamedAwards are the weekly awards with team labels.
type NamedAwards struct {
	MostEfficient     *EfficiencyAward `json:"most_efficient_manager"`
	LeastEfficient    *EfficiencyAward `json:"least_efficient_manager"`
	HighestInLoss     *ResultAward     `json:"highest_points_in_loss"`
	LowestInWin       *ResultAward     `json:"lowest_points_in_win"`
	LargestWinMargin  *ResultAward     `json:"largest_winning_margin"`
	SmallestWinMargin *ResultAward     `json:"smallest_winning_margin"`
}

// MappedTransaction is a transaction with player names and the creator's team.
type MappedTransaction struct {
	ID              string         `json:"transaction_id"`
	Type            string         `json:"type"`
	Status          string         `json:"status"`
	Created         int64          `json:"created"`
	Creator         string         `json:"creator"`
	CreatorTeamName string         `json:"creator_team_name"`
	Adds            map[string]int `json:"adds"`
	Drops           map[string]int `json:"drops"`
	RosterIDs       []int          `json:"roster_ids"`
}

// DraftedPlayer is one pick of a team.
type DraftedPlayer struct {
	Round         int    `json:"round"`
	PickNo        int    `json:"pick_no"`
	DraftPosition int    `json:"draft_position"`
	PlayerID      string `json:"player_id"`
	PlayerName    string `json:"player_name"`
	Position      string `json:"position"`
}

// TeamDraft is every pick a team made, in draft order.
type TeamDraft struct {
	TeamName string          `json:"team_name"`
	PickedBy string          `json:"picked_by"`
	Picks    []DraftedPlayer `json:"picks"`
}

type mapper struct {
	ids *identity.Resolver
}

func (m mapper) player(id string, pts float64) PlayerLine {
	pos := m.ids.PlayerPositions(id)
	if pos == nil {
		pos = []string{}
	}
	return PlayerLine{PlayerID: id, PlayerName: m.ids.PlayerName(id), Points: pts, Positions: pos}
}

func (m mapper) entries(entries []model.MatchupEntry) []MappedEntry {
	out := make([]MappedEntry, 0, len(entries))
	for _, e := range entries {
		me := MappedEntry{
			RosterID:       e.RosterID,
			TeamName:       m.ids.TeamLabel(e.RosterID),
			Points:         e.Points,
			Starters:       make([]PlayerLine, 0, len(e.Starters)),
			StartersPoints: e.StartersPoints,
		}
		if e.MatchupID != 0 {
			id := e.MatchupID
			me.MatchupID = &id
		}
		if me.StartersPoints == nil {
			me.StartersPoints = []float64{}
		}
		for _, id := range e.Starters {
			me.Starters = append(me.Starters, m.player(id, e.PlayerPoints(id)))
		}
		bench := e.Bench()
		me.Bench = make([]PlayerLine, 0, len(bench))
		for _, id := range bench {
			me.Bench = append(me.Bench, m.player(id, e.PlayerPoints(id)))
		}
		out = append(out, me)
	}
	return out
}

func (m mapper) team(ts *matchup.TeamScore) *NamedTeam {
	if ts == nil {
		return nil
	}
	return &NamedTeam{RosterID: ts.RosterID, TeamName: m.ids.TeamLabel(ts.RosterID), Points: types.RoundPoints(ts.Points)}
}

func (m mapper) lineup(l lineup.Lineup) NamedLineup {
	out := NamedLineup{Slots: make([]NamedSlot, 0, len(l.Slots)), Total: types.RoundPoints(l.Total())}
	for _, s := range l.Slots {
		ns := NamedSlot{Slot: s.Label, PlayerLine: PlayerLine{Positions: []string{}}}
		if s.Pick != nil {
			ns.PlayerLine = m.player(s.Pick.PlayerID, s.Pick.Points)
		}
		out.Slots = append(out.Slots, ns)
	}
	return out
}

func (m mapper) efficiency(e *matchup.Efficiency) *EfficiencyAward {
	if e == nil {
		return nil
	}
	return &EfficiencyAward{
		RosterID:    e.RosterID,
		TeamName:    m.ids.TeamLabel(e.RosterID),
		Actual:      types.RoundPoints(e.Actual),
		Optimal:     types.RoundPoints(e.Optimal),
		LeftOnBench: types.RoundPoints(e.LeftOnBench()),
	}
}

func (m mapper) result(r *matchup.Result) *ResultAward {
	if r == nil {
		return nil
	}
	return &ResultAward{
		RosterID:       r.RosterID,
		TeamName:       m.ids.TeamLabel(r.RosterID),
		OpponentID:     r.OpponentID,
		OpponentName:   m.ids.TeamLabel(r.OpponentID),
		Points:         types.RoundPoints(r.Points),
		OpponentPoints: types.RoundPoints(r.OpponentPoints),
		Margin:         types.RoundPoints(r.Margin),
	}
}

func (m mapper) awards(a matchup.Awards) NamedAwards {
	return NamedAwards{
		MostEfficient:     m.efficiency(a.MostEfficient),
		LeastEfficient:    m.efficiency(a.LeastEfficient),
		HighestInLoss:     m.result(a.HighestInLoss),
		LowestInWin:       m.result(a.LowestInWin),
		LargestWinMargin:  m.result(a.LargestWinMargin),
		SmallestWinMargin: m.result(a.SmallestWinMargin),
	}
}

func (m mapper) byName(moves map[string]int) map[string]int {
	out := make(map[string]int, len(moves))
	for id, roster := range moves {
		out[m.ids.PlayerName(id)] = roster
	}
	return out
}

func (m mapper) transactions(txs []model.Transaction) []MappedTransaction {
	out := make([]MappedTransaction, 0, len(txs))
	for _, t := range txs {
		creatorTeam := unknownTeam
		if len(t.RosterIDs) > 0 {
			creatorTeam = m.ids.TeamLabel(t.RosterIDs[0])
		}
		rosters := t.RosterIDs
		if rosters == nil {
			rosters = []int{}
		}
		out = append(out, MappedTransaction{
			ID:              t.ID,
			Type:            t.Type,
			Status:          t.Status,
			Created:         t.Created,
			Creator:         t.Creator,
			CreatorTeamName: creatorTeam,
			Adds:            m.byName(t.Adds),
			Drops:           m.byName(t.Drops),
			RosterIDs:       rosters,
		})
	}
	return out
}

// drafts groups the picks of the first draft by team, in order of each
// team's first pick.
func (m mapper) drafts(drafts []model.Draft) []TeamDraft {
	if len(drafts) == 0 {
		return []TeamDraft{}
	}
	d := drafts[0]
	picks := append([]model.DraftPick(nil), d.Picks...)
	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].Round != picks[j].Round {
			return picks[i].Round < picks[j].Round
		}
		return picks[i].PickNo < picks[j].PickNo
	})

	index := make(map[string]int)
	out := make([]TeamDraft, 0)
	for _, p := range picks {
		i, ok := index[p.PickedBy]
		if !ok {
			i = len(out)
			index[p.PickedBy] = i
			out = append(out, TeamDraft{TeamName: m.draftTeam(p.PickedBy), PickedBy: p.PickedBy})
		}
		name := "Unknown"
		if p.PlayerID != "" {
			name = m.ids.PlayerName(p.PlayerID)
		}
		out[i].Picks = append(out[i].Picks, DraftedPlayer{
			Round:         p.Round,
			PickNo:        p.PickNo,
			DraftPosition: d.DraftOrder[p.PickedBy],
			PlayerID:      p.PlayerID,
			PlayerName:    name,
			Position:      p.PickPosition(),
		})
	}
	return out
}

func (m mapper) draftTeam(pickedBy string) string {
	if pickedBy == "" {
		return unknownTeam
	}
	if id, err := m.ids.Owner(pickedBy); err == nil {
		if team, ok := id.TeamName.Get(); ok {
			return team
		}
	}
	return "Team " + pickedBy
}
