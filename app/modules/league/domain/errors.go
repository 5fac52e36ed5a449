package leaguedomain

import "errors"

// Domain failures returned by the league service. Handlers map them to 4xx.
var (
	ErrTeamNameRequired    = errors.New("team name is required")
	ErrTeamExists          = errors.New("team already exists")
	ErrTeamNotFound        = errors.New("team not found")
	ErrShooterNameRequired = errors.New("shooter first and last name are required")
	ErrShooterExists       = errors.New("shooter already exists")
	ErrSeasonNotFound      = errors.New("season not found")
)
