package alltime

import (
	"sort"

	"github.com/okian/gridiron/internal/domain/model"
)

// Week is one regular-season week of raw entries.
type Week struct {
	Number  int
	Entries []model.MatchupEntry
}

// Season is the per-season input: who owned which roster and what was played.
type Season struct {
	Season  string
	Owners  map[int]string    // roster id to owner id
	Display map[string]string // owner id to display name
	Weeks   []Week
}

// Game is one manager's result in one week.
type Game struct {
	Season         string  `json:"season"`
	Week           int     `json:"week"`
	Points         float64 `json:"points"`
	OpponentPoints float64 `json:"opponent_points"`
	Won            bool    `json:"won"`
	Margin         float64 `json:"margin"`
	Opponent       string  `json:"opponent_owner_id"`
}

// ledger is one manager's running collection across the whole log.
type ledger struct {
	ownerID          string
	seasons          map[string]bool
	games            []Game
	scores           []float64
	weeksAboveMedian int
	totalWeeks       int
	luckyWins        int
	unluckyLosses    int
	topScoreWeeks    int
	lowScoreWeeks    int
}

// accumulator owns every ledger for one Compute call.
type accumulator struct {
	ledgers map[string]*ledger
	order   []string
	display map[string]string
}

func newAccumulator() *accumulator {
	return &accumulator{ledgers: make(map[string]*ledger), display: make(map[string]string)}
}

func (a *accumulator) ledger(ownerID string) *ledger {
	l, ok := a.ledgers[ownerID]
	if !ok {
		l = &ledger{ownerID: ownerID, seasons: make(map[string]bool)}
		a.ledgers[ownerID] = l
		a.order = append(a.order, ownerID)
	}
	return l
}

func (a *accumulator) displayName(ownerID string) string {
	if d, ok := a.display[ownerID]; ok && d != "" {
		return d
	}
	return ownerID
}

// sortedSeasons orders seasons by their key so repeated runs agree.
func sortedSeasons(seasons []Season) []Season {
	out := append([]Season(nil), seasons...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Season < out[j].Season })
	return out
}

func sortedWeeks(weeks []Week) []Week {
	out := append([]Week(nil), weeks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func rosterIDs(owners map[int]string) []int {
	ids := make([]int, 0, len(owners))
	for id := range owners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// weekGame is both sides of a game whose owners both resolve.
type weekGame struct {
	home, away       string
	homePts, awayPts float64
}

func resolvedGames(w Week, owners map[int]string) []weekGame {
	pairs, _ := model.Pairs(w.Entries)
	out := make([]weekGame, 0, len(pairs))
	for _, p := range pairs {
		h, hok := owners[p.Home.RosterID]
		a, aok := owners[p.Away.RosterID]
		if !hok || !aok || h == "" || a == "" {
			continue
		}
		out = append(out, weekGame{home: h, away: a, homePts: p.Home.Points, awayPts: p.Away.Points})
	}
	return out
}

func weekScores(games []weekGame) []float64 {
	out := make([]float64, 0, 2*len(games))
	for _, g := range games {
		out = append(out, g.homePts, g.awayPts)
	}
	return out
}

// median averages the two middle values of an even-length sample.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

// collectGames is the first pass: game logs, seasons and median wins.
func (a *accumulator) collectGames(seasons []Season) {
	for _, s := range seasons {
		for _, rid := range rosterIDs(s.Owners) {
			owner := s.Owners[rid]
			if owner == "" {
				continue
			}
			if d, ok := s.Display[owner]; ok {
				a.display[owner] = d
			}
			a.ledger(owner).seasons[s.Season] = true
		}

		for _, w := range sortedWeeks(s.Weeks) {
			games := resolvedGames(w, s.Owners)
			med := median(weekScores(games))
			for _, g := range games {
				a.record(s.Season, w.Number, g.home, g.away, g.homePts, g.awayPts, med)
				a.record(s.Season, w.Number, g.away, g.home, g.awayPts, g.homePts, med)
			}
		}
	}
}

func (a *accumulator) record(season string, week int, owner, opp string, pts, oppPts, med float64) {
	l := a.ledger(owner)
	l.games = append(l.games, Game{
		Season:         season,
		Week:           week,
		Points:         pts,
		OpponentPoints: oppPts,
		Won:            pts > oppPts,
		Margin:         pts - oppPts,
		Opponent:       opp,
	})
	l.scores = append(l.scores, pts)
	l.totalWeeks++
	if pts > med {
		l.weeksAboveMedian++
	}
}

// classifyWeeks is the second pass. It walks the log again and counts lucky
// wins, unlucky losses and weeks tied for the league high or low.
func (a *accumulator) classifyWeeks(seasons []Season) {
	type weekResult struct {
		points float64
		won    bool
	}
	for _, s := range seasons {
		for _, w := range sortedWeeks(s.Weeks) {
			games := resolvedGames(w, s.Owners)
			scores := weekScores(games)
			if len(scores) == 0 {
				continue
			}
			med := median(scores)
			hi, lo := scores[0], scores[0]
			for _, x := range scores[1:] {
				if x > hi {
					hi = x
				}
				if x < lo {
					lo = x
				}
			}

			results := make(map[string]weekResult, len(scores))
			owners := make([]string, 0, len(scores))
			put := func(owner string, pts, oppPts float64) {
				if _, seen := results[owner]; !seen {
					owners = append(owners, owner)
				}
				results[owner] = weekResult{points: pts, won: pts > oppPts}
			}
			for _, g := range games {
				put(g.home, g.homePts, g.awayPts)
				put(g.away, g.awayPts, g.homePts)
			}

			for _, owner := range owners {
				l, ok := a.ledgers[owner]
				if !ok {
					continue
				}
				r := results[owner]
				if r.won && r.points < med {
					l.luckyWins++
				}
				if !r.won && r.points > med {
					l.unluckyLosses++
				}
				if r.points == hi {
					l.topScoreWeeks++
				}
				if r.points == lo {
					l.lowScoreWeeks++
				}
			}
		}
	}
}
