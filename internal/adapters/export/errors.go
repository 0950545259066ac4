package export

import "errors"

// ErrNothingToExport is returned for a nil report or result.
var ErrNothingToExport = errors.New("nothing to export")
