package standings

import "errors"

// Sentinel kinds for standings errors.
var (
	ErrFinal     = errors.New("snapshot is final")
	ErrWeekOrder = errors.New("week does not follow snapshot")
)
