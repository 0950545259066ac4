// Package matchup turns one week of raw matchup entries into head-to-head
// results, league-wide lineups and weekly awards.
package matchup

import (
	"github.com/okian/gridiron/internal/domain/lineup"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/position"
	"github.com/okian/gridiron/pkg/metrics"
)

// Result is one side of a scored game.
type Result struct {
	RosterID       int     `json:"roster_id"`
	OpponentID     int     `json:"opponent_roster_id"`
	MatchupID      int     `json:"matchup_id"`
	Points         float64 `json:"points"`
	OpponentPoints float64 `json:"opponent_points"`
	Won            bool    `json:"won"`
	Margin         float64 `json:"margin"`
}

// Tied reports whether both sides scored the same.
func (r Result) Tied() bool { return r.Points == r.OpponentPoints }

// TeamScore is a roster's points for the week.
type TeamScore struct {
	RosterID int     `json:"roster_id"`
	Points   float64 `json:"points"`
}

// Efficiency compares a roster's started total with its best possible lineup.
type Efficiency struct {
	RosterID int     `json:"roster_id"`
	Actual   float64 `json:"actual_score"`
	Optimal  float64 `json:"optimal_score"`
}

// LeftOnBench is the points the roster left unused.
func (e Efficiency) LeftOnBench() float64 { return e.Optimal - e.Actual }

// WeekAnalysis is everything derived from one week of entries.
type WeekAnalysis struct {
	Results        []Result      `json:"results"`
	Highest        *TeamScore    `json:"highest_team"`
	Lowest         *TeamScore    `json:"lowest_team"`
	BestLineup     lineup.Lineup `json:"highest_starters_team"`
	WorstStarted   lineup.Lineup `json:"lowest_starters_team"`
	BenchStandouts lineup.Lineup `json:"benchwarmers_team"`
	Efficiency     []Efficiency  `json:"efficiency"`
	Awards         Awards        `json:"awards"`
	Skipped        []model.Group `json:"-"`
}

// Result returns the result of a roster, false for byes and unscored groups.
func (w WeekAnalysis) Result(rosterID int) (Result, bool) {
	for _, r := range w.Results {
		if r.RosterID == rosterID {
			return r, true
		}
	}
	return Result{}, false
}

// ByRoster indexes the results by roster id.
func (w WeekAnalysis) ByRoster() map[int]Result {
	out := make(map[int]Result, len(w.Results))
	for _, r := range w.Results {
		out[r.RosterID] = r
	}
	return out
}

// Score pairs the entries of one week. Groups that are not two-team games are
// returned separately and never scored.
func Score(entries []model.MatchupEntry) ([]Result, []model.Group) {
	pairs, skipped := model.Pairs(entries)
	results := make([]Result, 0, 2*len(pairs))
	for _, p := range pairs {
		results = append(results, side(p.MatchupID, p.Home, p.Away), side(p.MatchupID, p.Away, p.Home))
	}
	return results, skipped
}

func side(matchupID int, own, opp model.MatchupEntry) Result {
	return Result{
		RosterID:       own.RosterID,
		OpponentID:     opp.RosterID,
		MatchupID:      matchupID,
		Points:         own.Points,
		OpponentPoints: opp.Points,
		Won:            own.Points > opp.Points,
		Margin:         own.Points - opp.Points,
	}
}

// AnalyzeWeek scores the week and builds the league-wide lineups and awards.
func AnalyzeWeek(entries []model.MatchupEntry, elig position.Eligibility, tmpl position.Template) WeekAnalysis {
	results, skipped := Score(entries)
	for range skipped {
		metrics.RecordMalformedGroup()
	}

	w := WeekAnalysis{
		Results:        results,
		BestLineup:     lineup.Build(bestScores(entries), tmpl, elig, nil, lineup.Max),
		WorstStarted:   lineup.Build(worstStarterScores(entries), tmpl, elig, nil, lineup.Min),
		BenchStandouts: lineup.Build(benchStandouts(entries, elig), tmpl, elig, nil, lineup.Max),
		Efficiency:     efficiencies(entries, elig, tmpl),
		Skipped:        skipped,
	}
	w.Highest, w.Lowest = extremes(results)
	w.Awards = computeAwards(results, w.Efficiency)
	return w
}

func extremes(results []Result) (*TeamScore, *TeamScore) {
	var hi, lo *TeamScore
	for _, r := range results {
		if hi == nil || r.Points > hi.Points {
			hi = &TeamScore{RosterID: r.RosterID, Points: r.Points}
		}
		if lo == nil || r.Points < lo.Points {
			lo = &TeamScore{RosterID: r.RosterID, Points: r.Points}
		}
	}
	return hi, lo
}

// EntryEfficiency computes a single roster's bench efficiency.
func EntryEfficiency(e model.MatchupEntry, elig position.Eligibility, tmpl position.Template) Efficiency {
	optimal := lineup.Build(entryScores(e), tmpl, elig, nil, lineup.Max)
	return Efficiency{RosterID: e.RosterID, Actual: e.StartedTotal(), Optimal: optimal.Total()}
}

func efficiencies(entries []model.MatchupEntry, elig position.Eligibility, tmpl position.Template) []Efficiency {
	out := make([]Efficiency, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryEfficiency(e, elig, tmpl))
	}
	return out
}

func entryScores(e model.MatchupEntry) []lineup.Score {
	ids := e.OrderedPlayers()
	out := make([]lineup.Score, 0, len(ids))
	for _, id := range ids {
		out = append(out, lineup.Score{PlayerID: id, Points: e.PlayersPoints[id]})
	}
	return out
}

// scoreTable keeps one score per player in first-seen order.
type scoreTable struct {
	order []string
	pts   map[string]float64
}

func newScoreTable() *scoreTable { return &scoreTable{pts: make(map[string]float64)} }

func (t *scoreTable) keep(id string, pts float64, better func(candidate, current float64) bool) {
	cur, ok := t.pts[id]
	if !ok {
		t.order = append(t.order, id)
		t.pts[id] = pts
		return
	}
	if better(pts, cur) {
		t.pts[id] = pts
	}
}

func (t *scoreTable) scores() []lineup.Score {
	out := make([]lineup.Score, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, lineup.Score{PlayerID: id, Points: t.pts[id]})
	}
	return out
}

func higher(a, b float64) bool { return a > b }
func lower(a, b float64) bool { return a < b }

// bestScores is each player's best score across every team this week.
func bestScores(entries []model.MatchupEntry) []lineup.Score {
	t := newScoreTable()
	for _, e := range entries {
		for _, id := range e.OrderedPlayers() {
			t.keep(id, e.PlayersPoints[id], higher)
		}
	}
	return t.scores()
}

// worstStarterScores is each starter's lowest score across the teams that started them.
func worstStarterScores(entries []model.MatchupEntry) []lineup.Score {
	t := newScoreTable()
	for _, e := range entries {
		for _, id := range e.Starters {
			t.keep(id, e.PlayersPoints[id], lower)
		}
	}
	return t.scores()
}

var flexCategories = []position.Category{position.RB, position.WR, position.TE} //nolint:gochecknoglobals // fixed set

// benchStandouts collects bench players who outscored the weakest starter of a
// category they share, or of any FLEX category when they are FLEX eligible.
// A player standing out on several teams keeps the highest score.
func benchStandouts(entries []model.MatchupEntry, elig position.Eligibility) []lineup.Score {
	t := newScoreTable()
	for _, e := range entries {
		floor := make(map[position.Category]float64)
		for _, id := range e.Starters {
			pts := e.PlayersPoints[id]
			for _, c := range elig.Of(id) {
				if cur, ok := floor[c]; !ok || pts < cur {
					floor[c] = pts
				}
			}
		}

		for _, id := range e.Bench() {
			cats := elig.Of(id)
			if len(cats) == 0 {
				continue
			}
			pts := e.PlayersPoints[id]
			if outscores(pts, cats, floor) || (cats.FlexEligible() && outscores(pts, flexCategories, floor)) {
				t.keep(id, pts, higher)
			}
		}
	}
	return t.scores()
}

func outscores(pts float64, cats []position.Category, floor map[position.Category]float64) bool {
	for _, c := range cats {
		if low, ok := floor[c]; ok && pts > low {
			return true
		}
	}
	return false
}
