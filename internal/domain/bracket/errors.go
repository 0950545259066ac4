package bracket

import "errors"

// Sentinel kinds for bracket resolution errors.
var (
	ErrCycle       = errors.New("bracket references form a cycle")
	ErrUnknownNode = errors.New("bracket references an unknown match")
)
