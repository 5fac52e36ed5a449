package scoredb

import "errors"

// ErrNotFound indicates the requested score record does not exist in the database.
var ErrNotFound = errors.New("score not found")

// ErrDuplicateScore is returned by Create when the shooter already has a
// score for that season and week.
var ErrDuplicateScore = errors.New("score already recorded for this week")
