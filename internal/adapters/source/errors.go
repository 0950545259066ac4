package source

import "errors"

// ErrDecode marks a stored document that is not valid JSON for its record type.
var ErrDecode = errors.New("malformed source document")
