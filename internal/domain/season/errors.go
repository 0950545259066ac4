package season

import "errors"

// ErrSeasonUnavailable means the upstream data for a season is missing
// entirely: no league document or no week data at all.
var ErrSeasonUnavailable = errors.New("season cannot be processed")
