// Package source decodes raw league documents from storage into model records.
//
// The raw layout is one directory per season:
//
//	players.json
//	<season>/league_info.json
//	<season>/users.json
//	<season>/rosters.json
//	<season>/draft.json
//	<season>/playoffs_winnersbracket.json
//	<season>/playoffs_losersbracket.json
//	<season>/week_<n>/matchups.json
//	<season>/week_<n>/transactions.json
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/gridiron/internal/adapters/storage"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/season"
	"github.com/okian/gridiron/pkg/logger"
)

// Document names.
const (
	PlayersKey     = "players.json"
	LeagueDoc      = "league_info.json"
	UsersDoc       = "users.json"
	RostersDoc     = "rosters.json"
	DraftDoc       = "draft.json"
	WinnersDoc     = "playoffs_winnersbracket.json"
	LosersDoc      = "playoffs_losersbracket.json"
	MatchupsDoc    = "matchups.json"
	TransactionDoc = "transactions.json"
	weekPrefix     = "week_"
)

// Provider reads seasons from a store.
type Provider struct {
	store      storage.Store
	logger     logger.Logger
	playersKey string
}

// New creates a Provider over store.
func New(store storage.Store, opts ...Option) *Provider {
	p := &Provider{store: store, logger: logger.Nop(), playersKey: PlayersKey}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Seasons lists every numeric top-level directory holding a league document,
// ascending.
func (p *Provider) Seasons(ctx context.Context) ([]string, error) {
	keys, err := p.store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("discover seasons: %w", err)
	}
	var out []string
	for _, k := range keys {
		dir, doc, ok := strings.Cut(k, "/")
		if !ok || doc != LeagueDoc || !numeric(dir) {
			continue
		}
		out = append(out, dir)
	}
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func numeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Players loads the player catalogue. A missing catalogue is empty.
func (p *Provider) Players(ctx context.Context) (model.Players, error) {
	players := model.Players{}
	found, err := p.decode(ctx, p.playersKey, &players)
	if err != nil {
		return nil, err
	}
	if !found {
		p.logger.Warn(ctx, "player catalogue missing", logger.String("key", p.playersKey))
	}
	if players == nil {
		players = model.Players{}
	}
	return players, nil
}

// Season loads every document of one season. Missing documents are left
// empty so the aggregator decides whether the season can be processed;
// malformed documents fail with ErrDecode.
func (p *Provider) Season(ctx context.Context, name string, players model.Players) (season.Input, error) {
	in := season.Input{Season: name, Players: players}

	var league model.League
	found, err := p.decode(ctx, storage.Join(name, LeagueDoc), &league)
	if err != nil {
		return in, err
	}
	if found {
		in.League = &league
	}

	if _, err := p.decode(ctx, storage.Join(name, UsersDoc), &in.Owners); err != nil {
		return in, err
	}
	if _, err := p.decode(ctx, storage.Join(name, RostersDoc), &in.Rosters); err != nil {
		return in, err
	}
	if _, err := p.decode(ctx, storage.Join(name, DraftDoc), &in.Drafts); err != nil {
		return in, err
	}
	if in.WinnersBracket, err = p.bracket(ctx, storage.Join(name, WinnersDoc)); err != nil {
		return in, err
	}
	if in.LosersBracket, err = p.bracket(ctx, storage.Join(name, LosersDoc)); err != nil {
		return in, err
	}

	weeks, err := p.weeks(ctx, name)
	if err != nil {
		return in, err
	}
	for _, w := range weeks {
		wd := season.WeekData{Week: w}
		dir := storage.Join(name, weekPrefix+strconv.Itoa(w))
		if _, err := p.decode(ctx, storage.Join(dir, MatchupsDoc), &wd.Matchups); err != nil {
			return in, err
		}
		if _, err := p.decode(ctx, storage.Join(dir, TransactionDoc), &wd.Transactions); err != nil {
			return in, err
		}
		in.Weeks = append(in.Weeks, wd)
	}

	p.logger.Debug(ctx, "season loaded",
		logger.String("season", name),
		logger.Bool("league", in.League != nil),
		logger.Int("weeks", len(in.Weeks)),
		logger.Int("rosters", len(in.Rosters)),
	)
	return in, nil
}

// bracket returns nil when the document is absent and an empty table when
// it is present but empty.
func (p *Provider) bracket(ctx context.Context, key string) ([]model.BracketNode, error) {
	var nodes []model.BracketNode
	found, err := p.decode(ctx, key, &nodes)
	if err != nil || !found {
		return nil, err
	}
	if nodes == nil {
		nodes = []model.BracketNode{}
	}
	return nodes, nil
}

// weeks lists the week numbers with a matchups document, ascending.
func (p *Provider) weeks(ctx context.Context, name string) ([]int, error) {
	keys, err := p.store.List(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list season %s: %w", name, err)
	}
	var out []int
	for _, k := range keys {
		parts := strings.Split(strings.TrimPrefix(k, name+"/"), "/")
		if len(parts) != 2 || parts[1] != MatchupsDoc || !strings.HasPrefix(parts[0], weekPrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(parts[0], weekPrefix))
		if err != nil || n <= 0 {
			continue
		}
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}

// decode loads key into v, reporting false when the document is absent.
func (p *Provider) decode(ctx context.Context, key string, v any) (bool, error) {
	data, err := p.store.Load(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		p.logger.Debug(ctx, "document missing", logger.String("key", key))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("%s: %w: %w", key, ErrDecode, err)
	}
	return true, nil
}
