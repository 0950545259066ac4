package identity

import "errors"

// ErrMissingReference is returned for an id with no resolvable identity.
// Label helpers absorb it with a placeholder.
var ErrMissingReference = errors.New("missing identity reference")
