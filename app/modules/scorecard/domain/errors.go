package scorecarddomain

import "errors"

// ErrInvalidScoreRecord is returned when a record has a missing or negative
// bunker value or a week outside the scorecard range.
var ErrInvalidScoreRecord = errors.New("invalid score record")

// ErrScorecardNotFound is returned when a team has no scores in a season.
var ErrScorecardNotFound = errors.New("no scores for team in season")

// ErrInvalidOptions is returned for an unknown variant or key mode name.
var ErrInvalidOptions = errors.New("invalid scorecard options")
