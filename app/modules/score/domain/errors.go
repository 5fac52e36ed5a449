package scoredomain

import "errors"

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrInvalidWeek      = errors.New("week must be between 0 and 15")
	ErrInvalidScore     = errors.New("bunker scores must not be negative")
	ErrNoEntries        = errors.New("no score entries supplied")
	ErrInvalidMatchDate = errors.New("invalid match date")
	ErrInvalidSheet     = errors.New("invalid score sheet")
)
