// Package alltime computes career statistics over every season's game log:
// manager aggregates, luck indices, head-to-head records and high scores.
package alltime

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/gridiron/internal/domain/types"
)

// Mark is a value with the season and week it happened in. The zero Mark
// stands for "no such game".
type Mark struct {
	Value  float64 `json:"value"`
	Season string  `json:"season"`
	Week   int     `json:"week"`
}

// Set reports whether the mark refers to a game.
func (m Mark) Set() bool { return m.Season != "" }

// ManagerStats is one manager's career line.
type ManagerStats struct {
	OwnerID          string  `json:"owner_id"`
	DisplayName      string  `json:"display_name"`
	Seasons          int     `json:"seasons"`
	GamesPlayed      int     `json:"games_played"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	WinPct           float64 `json:"win_pct"`
	TotalPF          float64 `json:"total_pf"`
	AvgPF            float64 `json:"avg_pf"`
	TotalPA          float64 `json:"total_pa"`
	AvgPA            float64 `json:"avg_pa"`
	AvgMargin        float64 `json:"avg_margin"`
	AvgWinMargin     float64 `json:"avg_win_margin"`
	AvgLossMargin    float64 `json:"avg_loss_margin"`
	HighScore        Mark    `json:"high_score"`
	LowScore         Mark    `json:"low_score"`
	LargestWin       Mark    `json:"largest_win"`
	SmallestWin      Mark    `json:"smallest_win"`
	LargestLoss      Mark    `json:"largest_loss"`
	SmallestLoss     Mark    `json:"smallest_loss"`
	WeeksAboveMedian int     `json:"weeks_above_median"`
	MedianWinPct     float64 `json:"median_win_pct"`
	LuckyWins        int     `json:"lucky_wins"`
	UnluckyLosses    int     `json:"unlucky_losses"`
	TopScoreWeeks    int     `json:"top_score_weeks"`
	LowScoreWeeks    int     `json:"low_score_weeks"`
	PointsStdev      float64 `json:"points_stdev"`
}

// Result is the output of one Compute call.
//
// Managers is ranked by win percentage then total points for. Order lists the
// ranked managers' owner ids by display name.
type Result struct {
	Managers   []ManagerStats            `json:"managers"`
	HeadToHead map[string]map[string]H2H `json:"head_to_head"`
	Order      []string                  `json:"order"`
	Display    map[string]string         `json:"display"`
}

// Compute runs both passes over the log and ranks the managers.
// Only the listed seasons are read and the input is not modified.
func Compute(seasons []Season) *Result {
	ordered := sortedSeasons(seasons)
	acc := newAccumulator()
	acc.collectGames(ordered)
	acc.classifyWeeks(ordered)

	res := &Result{Display: make(map[string]string)}
	for _, owner := range acc.order {
		ms, err := summarize(acc.ledgers[owner], acc.displayName(owner))
		if err != nil {
			continue
		}
		res.Managers = append(res.Managers, ms)
		res.Display[owner] = ms.DisplayName
	}
	if res.Managers == nil {
		res.Managers = []ManagerStats{}
	}
	sort.SliceStable(res.Managers, func(i, j int) bool {
		a, b := res.Managers[i], res.Managers[j]
		if a.WinPct != b.WinPct {
			return a.WinPct > b.WinPct
		}
		return a.TotalPF > b.TotalPF
	})

	res.HeadToHead = headToHead(acc, res.Display)
	res.Order = displayOrder(res.Display)
	return res
}

func summarize(l *ledger, display string) (ManagerStats, error) {
	if l == nil || len(l.games) == 0 {
		return ManagerStats{}, fmt.Errorf("manager %q: %w", ownerOf(l), ErrEmptyInput)
	}

	n := len(l.games)
	points := make([]float64, 0, n)
	against := make([]float64, 0, n)
	margins := make([]float64, 0, n)
	var winMargins, lossMargins []float64
	var wins, losses []Game
	for _, g := range l.games {
		points = append(points, g.Points)
		against = append(against, g.OpponentPoints)
		margins = append(margins, g.Margin)
		if g.Won {
			wins = append(wins, g)
			winMargins = append(winMargins, g.Margin)
		} else {
			losses = append(losses, g)
			lossMargins = append(lossMargins, g.Margin)
		}
	}

	ms := ManagerStats{
		OwnerID:          l.ownerID,
		DisplayName:      display,
		Seasons:          len(l.seasons),
		GamesPlayed:      n,
		Wins:             len(wins),
		Losses:           len(losses),
		WinPct:           types.Percent(len(wins), n),
		TotalPF:          floats.Sum(points),
		TotalPA:          floats.Sum(against),
		AvgPF:            stat.Mean(points, nil),
		AvgPA:            stat.Mean(against, nil),
		AvgMargin:        stat.Mean(margins, nil),
		AvgWinMargin:     meanOrZero(winMargins),
		AvgLossMargin:    meanOrZero(lossMargins),
		HighScore:        pick(l.games, byPoints, greater),
		LowScore:         pick(l.games, byPoints, less),
		LargestWin:       pick(wins, byMargin, greater),
		SmallestWin:      pick(wins, byMargin, less),
		LargestLoss:      pick(losses, byMargin, less),
		SmallestLoss:     pick(losses, byMargin, greater),
		WeeksAboveMedian: l.weeksAboveMedian,
		MedianWinPct:     types.Percent(l.weeksAboveMedian, l.totalWeeks),
		LuckyWins:        l.luckyWins,
		UnluckyLosses:    l.unluckyLosses,
		TopScoreWeeks:    l.topScoreWeeks,
		LowScoreWeeks:    l.lowScoreWeeks,
	}
	if len(l.scores) > 1 {
		ms.PointsStdev = stat.StdDev(l.scores, nil)
	}
	return ms, nil
}

func ownerOf(l *ledger) string {
	if l == nil {
		return ""
	}
	return l.ownerID
}

func meanOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func byPoints(g Game) float64 { return g.Points }
func byMargin(g Game) float64 { return g.Margin }
func greater(a, b float64) bool { return a > b }
func less(a, b float64) bool { return a < b }

// pick returns the first game whose key beats every other under better.
func pick(games []Game, key func(Game) float64, better func(a, b float64) bool) Mark {
	if len(games) == 0 {
		return Mark{}
	}
	best := games[0]
	for _, g := range games[1:] {
		if better(key(g), key(best)) {
			best = g
		}
	}
	return Mark{Value: key(best), Season: best.Season, Week: best.Week}
}

// Manager returns one manager's line from the result.
func (r *Result) Manager(ownerID string) (ManagerStats, error) {
	for _, m := range r.Managers {
		if m.OwnerID == ownerID {
			return m, nil
		}
	}
	return ManagerStats{}, fmt.Errorf("manager %q: %w", ownerID, ErrEmptyInput)
}
