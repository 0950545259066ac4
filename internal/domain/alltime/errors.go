package alltime

import "errors"

// ErrEmptyInput marks a manager without games. Such managers are left out of
// every ranked output.
var ErrEmptyInput = errors.New("manager has no games")
