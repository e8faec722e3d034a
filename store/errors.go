package store

import "errors"

// ErrNotFound is returned when an identifier does not resolve, including
// identifiers that are not well-formed ObjectIDs. Anything else coming out
// of a store call is an infrastructure failure.
var ErrNotFound = errors.New("not found")
