package leaguedb

import "errors"

// ErrNotFound indicates the requested team or shooter does not exist.
var ErrNotFound = errors.New("not found")
