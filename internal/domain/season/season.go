// Package season drives one league-season through the weekly engines.
//
// Weeks before the playoff start are the regular season: each is analysed
// and folded into the standings. Weeks from the playoff start through the
// last scored leg are the postseason and only get mapped matchups. Brackets
// and drafts are resolved once per season.
package season

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/okian/gridiron/internal/domain/alltime"
	"github.com/okian/gridiron/internal/domain/bracket"
	"github.com/okian/gridiron/internal/domain/identity"
	"github.com/okian/gridiron/internal/domain/matchup"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/position"
	"github.com/okian/gridiron/internal/domain/standings"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// Phases of a season week.
const (
	PhaseRegular    = "regular"
	PhasePostseason = "postseason"
)

// WeekData is the raw data of one week.
type WeekData struct {
	Week         int
	Matchups     []model.MatchupEntry
	Transactions []model.Transaction
}

// Input is everything the upstream provider supplied for one season.
// A nil bracket means the bracket document was absent.
type Input struct {
	Season         string
	League         *model.League
	Rosters        []model.Roster
	Owners         []model.Owner
	Players        model.Players
	Weeks          []WeekData
	WinnersBracket []model.BracketNode
	LosersBracket  []model.BracketNode
	Drafts         []model.Draft
}

// WeekRecap is the derived record of one regular-season week.
type WeekRecap struct {
	Week            int                 `json:"week"`
	Matchups        []MappedEntry       `json:"matchups"`
	Standings       []standings.Row     `json:"standings"`
	Highest         *NamedTeam          `json:"highest_scoring_team"`
	Lowest          *NamedTeam          `json:"lowest_scoring_team"`
	HighestStarters NamedLineup         `json:"highest_scoring_starters"`
	LowestStarters  NamedLineup         `json:"lowest_scoring_starters"`
	Benchwarmers    NamedLineup         `json:"benchwarmers"`
	Awards          NamedAwards         `json:"awards"`
	Transactions    []MappedTransaction `json:"-"`
}

// PostseasonWeek is a playoff week's mapped matchups.
type PostseasonWeek struct {
	Week     int           `json:"week"`
	Matchups []MappedEntry `json:"matchups"`
}

// Brackets holds both resolved playoff brackets.
type Brackets struct {
	Winners  []bracket.Round `json:"winners_bracket"`
	Losers   []bracket.Round `json:"losers_bracket"`
	Champion *bracket.Side   `json:"champion,omitempty"`
}

// Report is the derived data of one season.
type Report struct {
	Season     string           `json:"season"`
	LeagueName string           `json:"league_name"`
	Settings   model.Settings   `json:"settings"`
	Regular    []WeekRecap      `json:"regular_season"`
	Standings  []standings.Row  `json:"final_standings"`
	Postseason []PostseasonWeek `json:"postseason"`
	Brackets   *Brackets        `json:"brackets,omitempty"`
	Drafts     []TeamDraft      `json:"drafts"`

	owners  map[int]string
	display map[string]string
	weeks   []alltime.Week
}

// AllTime returns the season's regular-season game log input.
func (r *Report) AllTime() alltime.Season {
	return alltime.Season{Season: r.Season, Owners: r.owners, Display: r.display, Weeks: r.weeks}
}

// TeamScores lists every mapped entry of the season, regular season and
// postseason, byes included.
func (r *Report) TeamScores() []alltime.TeamScore {
	var out []alltime.TeamScore
	r.eachEntry(func(week int, e MappedEntry) {
		out = append(out, alltime.TeamScore{Points: e.Points, Season: r.Season, Week: week, TeamName: e.TeamName})
	})
	return out
}

// PlayerScores lists every starter and bench score of the season.
func (r *Report) PlayerScores() []alltime.PlayerScore {
	var out []alltime.PlayerScore
	r.eachEntry(func(week int, e MappedEntry) {
		for _, lines := range [][]PlayerLine{e.Starters, e.Bench} {
			for _, p := range lines {
				out = append(out, alltime.PlayerScore{
					Points:     p.Points,
					PlayerName: p.PlayerName,
					Season:     r.Season,
					Week:       week,
					TeamName:   e.TeamName,
				})
			}
		}
	})
	return out
}

func (r *Report) eachEntry(fn func(week int, e MappedEntry)) {
	for _, w := range r.Regular {
		for _, e := range w.Matchups {
			fn(w.Week, e)
		}
	}
	for _, w := range r.Postseason {
		for _, e := range w.Matchups {
			fn(w.Week, e)
		}
	}
}

// Aggregator processes seasons. It is safe to share across goroutines when
// its cache is.
type Aggregator struct {
	logger           logger.Logger
	cache            standings.Cache
	playoffWeekStart int
	lastScoredLeg    int
}

// New creates an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		cache:            standings.NewMemoryCache(),
		playoffWeekStart: DefaultPlayoffWeekStart,
		lastScoredLeg:    DefaultLastScoredLeg,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logger.Get()
	}
	return a
}

func (a *Aggregator) settings(l *model.League) model.Settings {
	s := l.Settings
	if s.PlayoffWeekStart <= 0 {
		s.PlayoffWeekStart = a.playoffWeekStart
	}
	if s.LastScoredLeg <= 0 {
		s.LastScoredLeg = a.lastScoredLeg
	}
	return s
}

// Process derives the report of one season. It fails with
// ErrSeasonUnavailable when the league document or every week is missing;
// every other data problem is logged and absorbed.
func (a *Aggregator) Process(ctx context.Context, in Input) (*Report, error) {
	start := time.Now()
	rep, err := a.process(ctx, in)
	metrics.RecordStageDuration("season", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordSeasonProcessed("failed")
		return nil, err
	}
	metrics.RecordSeasonProcessed("ok")
	return rep, nil
}

func (a *Aggregator) process(ctx context.Context, in Input) (*Report, error) {
	if in.League == nil {
		return nil, fmt.Errorf("season %s: no league document: %w", in.Season, ErrSeasonUnavailable)
	}
	if len(in.Weeks) == 0 {
		return nil, fmt.Errorf("season %s: %w: %w", in.Season, ErrSeasonUnavailable, model.ErrNoMatchups)
	}

	settings := a.settings(in.League)
	ids := identity.New(in.Rosters, in.Owners, identity.WithPlayers(in.Players))
	m := mapper{ids: ids}
	elig := ids.Eligibility()
	slots := in.League.RosterPositions
	if position.NewTemplate(slots).Size() == 0 {
		slots = position.DefaultSlots
	}
	tmpl := position.NewTemplate(slots)

	weeks := make(map[int]WeekData, len(in.Weeks))
	for _, w := range in.Weeks {
		if _, dup := weeks[w.Week]; !dup {
			weeks[w.Week] = w
		}
	}

	rep := &Report{
		Season:     in.Season,
		LeagueName: in.League.Name,
		Settings:   settings,
		Regular:    []WeekRecap{},
		Postseason: []PostseasonWeek{},
		owners:     make(map[int]string),
		display:    make(map[string]string, len(in.Owners)),
	}
	for _, id := range ids.RosterIDs() {
		owner, _ := ids.OwnerOf(id)
		rep.owners[id] = owner
	}
	for _, o := range in.Owners {
		if o.UserID != "" {
			rep.display[o.UserID] = o.DisplayName
		}
	}

	log := a.logger.Named("season")
	snap := standings.Seed(ids.RosterIDs())
	for week := 1; week < settings.PlayoffWeekStart; week++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		wd, ok := weeks[week]
		if !ok {
			log.Debug(ctx, "week missing, skipped", logger.String("season", in.Season), logger.Int("week", week))
			continue
		}
		if len(wd.Matchups) == 0 {
			log.Warn(ctx, "week skipped", logger.String("season", in.Season), logger.Int("week", week), logger.Error(model.ErrNoMatchups))
			continue
		}

		next, err := a.advance(in.Season, snap, wd)
		if err != nil {
			return nil, fmt.Errorf("season %s week %d: %w", in.Season, week, err)
		}
		snap = next

		analysis := matchup.AnalyzeWeek(wd.Matchups, elig, tmpl)
		a.logSkipped(ctx, log, in.Season, week, analysis.Skipped)

		rep.Regular = append(rep.Regular, WeekRecap{
			Week:            week,
			Matchups:        m.entries(wd.Matchups),
			Standings:       standings.Rank(snap, ids.TeamLabel),
			Highest:         m.team(analysis.Highest),
			Lowest:          m.team(analysis.Lowest),
			HighestStarters: m.lineup(analysis.BestLineup),
			LowestStarters:  m.lineup(analysis.WorstStarted),
			Benchwarmers:    m.lineup(analysis.BenchStandouts),
			Awards:          m.awards(analysis.Awards),
			Transactions:    m.transactions(wd.Transactions),
		})
		rep.weeks = append(rep.weeks, alltime.Week{Number: week, Entries: wd.Matchups})
		metrics.RecordWeekProcessed(PhaseRegular)
	}
	rep.Standings = standings.Rank(standings.Finalize(snap), ids.TeamLabel)

	if settings.LastScoredLeg >= settings.PlayoffWeekStart {
		for week := settings.PlayoffWeekStart; week <= settings.LastScoredLeg; week++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			wd, ok := weeks[week]
			if !ok || len(wd.Matchups) == 0 {
				continue
			}
			rep.Postseason = append(rep.Postseason, PostseasonWeek{Week: week, Matchups: m.entries(wd.Matchups)})
			metrics.RecordWeekProcessed(PhasePostseason)
		}
	}

	rep.Brackets = a.brackets(ctx, log, in, ids)
	rep.Drafts = m.drafts(in.Drafts)
	return rep, nil
}

// advance reuses a cached snapshot for the week when one is present and
// otherwise folds the week into prev and caches the result.
func (a *Aggregator) advance(season string, prev *standings.Snapshot, wd WeekData) (*standings.Snapshot, error) {
	if cached, ok := a.cache.Get(season, wd.Week); ok && cached.State() == standings.Partial {
		return cached, nil
	}
	next, err := standings.Advance(prev, standings.Week{
		Number:       wd.Week,
		Entries:      wd.Matchups,
		Transactions: wd.Transactions,
	})
	if err != nil {
		return nil, err
	}
	a.cache.Put(season, next)
	return next, nil
}

func (a *Aggregator) logSkipped(ctx context.Context, log logger.Logger, season string, week int, groups []model.Group) {
	for _, g := range groups {
		log.Warn(ctx, "matchup group not scored",
			logger.String("season", season),
			logger.Int("week", week),
			logger.Int("matchup_id", g.MatchupID),
			logger.Int("size", len(g.Entries)),
			logger.Error(model.ErrMalformedGroup),
		)
	}
}

// brackets resolves both brackets when both documents are present. A bracket
// that cannot be resolved is logged and left out.
func (a *Aggregator) brackets(ctx context.Context, log logger.Logger, in Input, ids *identity.Resolver) *Brackets {
	if in.WinnersBracket == nil || in.LosersBracket == nil {
		return nil
	}
	out := &Brackets{Winners: []bracket.Round{}, Losers: []bracket.Round{}}

	winners, err := bracket.Resolve(in.WinnersBracket, ids.TeamLabel)
	if err != nil {
		a.logBracket(ctx, log, in.Season, "winners", err)
	} else {
		out.Winners = bracket.ByRound(winners)
		if champ, ok := bracket.Champion(winners); ok {
			out.Champion = &champ
		}
	}

	losers, err := bracket.Resolve(in.LosersBracket, ids.TeamLabel)
	if err != nil {
		a.logBracket(ctx, log, in.Season, "losers", err)
	} else {
		out.Losers = bracket.ByRound(losers)
	}
	return out
}

func (a *Aggregator) logBracket(ctx context.Context, log logger.Logger, season, which string, err error) {
	kind := "invalid"
	switch {
	case errors.Is(err, bracket.ErrCycle):
		kind = "cycle"
	case errors.Is(err, bracket.ErrUnknownNode):
		kind = "unknown_node"
	}
	metrics.RecordErrorByComponent("bracket", kind)
	log.Warn(ctx, "bracket omitted", logger.String("season", season), logger.String("bracket", which), logger.Error(err))
}

// SortReports orders reports by season key.
func SortReports(reports []*Report) {
	sort.SliceStable(reports, func(i, j int) bool { return reports[i].Season < reports[j].Season })
}
