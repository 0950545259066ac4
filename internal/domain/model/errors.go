package model

import "errors"

// Sentinel kinds for raw record problems. Both are absorbed by the engines.
var (
	ErrMalformedGroup = errors.New("matchup group is not a two-team game")
	ErrNoMatchups     = errors.New("no matchups for week")
)
