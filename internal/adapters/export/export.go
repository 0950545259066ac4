// Package export writes derived league data back through the storage boundary
// as JSON documents and CSV tables.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/okian/gridiron/internal/adapters/storage"
	"github.com/okian/gridiron/internal/domain/alltime"
	"github.com/okian/gridiron/internal/domain/season"
	"github.com/okian/gridiron/internal/domain/standings"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// All-time document keys.
const (
	StandingsCSV     = "all_time/standings.csv"
	HeadToHeadCSV    = "all_time/head_to_head.csv"
	WeeklyHighCSV    = "all_time/weekly_high_scores.csv"
	PlayerHighCSV    = "all_time/player_high_scores.csv"
	AllTimeJSON      = "all_time/stats.json"
	ManifestJSON     = "manifest.json"
	diagonal         = "—"
	regularSeasonDir = "regular_season"
	postseasonDir    = "postseason"
)

// Exporter writes documents to a store.
type Exporter struct {
	store  storage.Store
	logger logger.Logger
}

// New creates an Exporter over store.
func New(store storage.Store, opts ...Option) *Exporter {
	e := &Exporter{store: store, logger: logger.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exporter) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := e.store.Save(ctx, key, append(data, '\n')); err != nil {
		return err
	}
	metrics.RecordExportWrite("json")
	return nil
}

func (e *Exporter) saveCSV(ctx context.Context, key string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := e.store.Save(ctx, key, buf.Bytes()); err != nil {
		return err
	}
	metrics.RecordExportWrite("csv")
	return nil
}

type regularSeasonRecap struct {
	Season    string          `json:"season"`
	Standings []standings.Row `json:"standings"`
}

// Season writes every document of one season report and returns their keys.
func (e *Exporter) Season(ctx context.Context, rep *season.Report) ([]string, error) {
	if rep == nil {
		return nil, ErrNothingToExport
	}
	var keys []string
	put := func(key string, v any) error {
		if err := e.saveJSON(ctx, key, v); err != nil {
			return err
		}
		keys = append(keys, key)
		return nil
	}

	for _, w := range rep.Regular {
		dir := storage.Join(rep.Season, regularSeasonDir, "week_"+strconv.Itoa(w.Week))
		if err := put(storage.Join(dir, "recap.json"), w); err != nil {
			return keys, err
		}
		if err := put(storage.Join(dir, "transactions.json"), w.Transactions); err != nil {
			return keys, err
		}
	}
	recap := regularSeasonRecap{Season: rep.Season, Standings: rep.Standings}
	if err := put(storage.Join(rep.Season, regularSeasonDir, "reg_season_recap.json"), recap); err != nil {
		return keys, err
	}

	for _, w := range rep.Postseason {
		key := storage.Join(rep.Season, postseasonDir, "week_"+strconv.Itoa(w.Week)+"_recap.json")
		if err := put(key, w); err != nil {
			return keys, err
		}
	}
	if rep.Brackets != nil {
		if err := put(storage.Join(rep.Season, postseasonDir, "postseason_recap.json"), rep.Brackets); err != nil {
			return keys, err
		}
	}

	if err := put(storage.Join(rep.Season, "draft.json"), rep.Drafts); err != nil {
		return keys, err
	}
	e.logger.Info(ctx, "season exported", logger.String("season", rep.Season), logger.Int("documents", len(keys)))
	return keys, nil
}

type allTimeDocument struct {
	*alltime.Result
	HighScores alltime.HighScoreTables `json:"high_scores"`
}

// AllTime writes the cross-season tables and returns their keys.
func (e *Exporter) AllTime(ctx context.Context, res *alltime.Result, tables alltime.HighScoreTables) ([]string, error) {
	if res == nil {
		return nil, ErrNothingToExport
	}
	docs := []struct {
		key  string
		rows [][]string
	}{
		{StandingsCSV, StandingsRows(res)},
		{HeadToHeadCSV, HeadToHeadRows(res)},
		{WeeklyHighCSV, WeeklyHighRows(tables.Teams)},
		{PlayerHighCSV, PlayerHighRows(tables.Players)},
	}
	keys := make([]string, 0, len(docs)+1)
	for _, d := range docs {
		if err := e.saveCSV(ctx, d.key, d.rows); err != nil {
			return keys, err
		}
		keys = append(keys, d.key)
	}
	if err := e.saveJSON(ctx, AllTimeJSON, allTimeDocument{Result: res, HighScores: tables}); err != nil {
		return keys, err
	}
	keys = append(keys, AllTimeJSON)
	return keys, nil
}

// StandingsRows renders the all-time standings table.
func StandingsRows(res *alltime.Result) [][]string {
	rows := [][]string{{
		"#", "Manager", "Seasons", "Games Played", "H2H Record (W-L)", "H2H Win %",
		"Total PF", "Avg PF", "Total PA", "Avg PA", "Avg Margin",
		"Avg Win Margin", "Avg Loss Margin", "High Score", "Low Score",
		"Largest Win", "Smallest Win", "Largest Loss", "Smallest Loss",
		"Median Win %", "Unlucky Losses", "Lucky Wins",
		"Points StDev", "Top Score Weeks", "Low Score Weeks",
	}}
	for i, m := range res.Managers {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			m.DisplayName,
			strconv.Itoa(m.Seasons),
			strconv.Itoa(m.GamesPlayed),
			Record(m.Wins, m.Losses),
			Percent(m.WinPct),
			Points(m.TotalPF),
			Points(m.AvgPF),
			Points(m.TotalPA),
			Points(m.AvgPA),
			Points(m.AvgMargin),
			Points(m.AvgWinMargin),
			Points(m.AvgLossMargin),
			Mark(m.HighScore),
			Mark(m.LowScore),
			Mark(m.LargestWin),
			Mark(m.SmallestWin),
			Mark(m.LargestLoss),
			Mark(m.SmallestLoss),
			Percent(m.MedianWinPct),
			strconv.Itoa(m.UnluckyLosses),
			strconv.Itoa(m.LuckyWins),
			Points(m.PointsStdev),
			strconv.Itoa(m.TopScoreWeeks),
			strconv.Itoa(m.LowScoreWeeks),
		})
	}
	return rows
}

// HeadToHeadRows renders the head-to-head matrix in display-name order.
func HeadToHeadRows(res *alltime.Result) [][]string {
	header := make([]string, 0, len(res.Order)+1)
	header = append(header, "")
	for _, id := range res.Order {
		header = append(header, res.Display[id])
	}
	rows := [][]string{header}
	for _, a := range res.Order {
		row := make([]string, 0, len(res.Order)+1)
		row = append(row, res.Display[a])
		for _, b := range res.Order {
			if a == b {
				row = append(row, diagonal)
				continue
			}
			h := res.Record(a, b)
			row = append(row, Record(h.Wins, h.Losses))
		}
		rows = append(rows, row)
	}
	return rows
}

// WeeklyHighRows renders the weekly team high-score table.
func WeeklyHighRows(scores []alltime.TeamScore) [][]string {
	rows := [][]string{{"#", "Points", "Year", "Week", "Team"}}
	for i, s := range scores {
		rows = append(rows, []string{strconv.Itoa(i + 1), Points(s.Points), s.Season, strconv.Itoa(s.Week), s.TeamName})
	}
	return rows
}

// PlayerHighRows renders the player high-score table.
func PlayerHighRows(scores []alltime.PlayerScore) [][]string {
	rows := [][]string{{"#", "Points", "Player", "Year", "Week", "Team"}}
	for i, s := range scores {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), Points(s.Points), s.PlayerName, s.Season, strconv.Itoa(s.Week), s.TeamName,
		})
	}
	return rows
}
