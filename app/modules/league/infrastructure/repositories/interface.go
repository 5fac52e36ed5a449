package leaguedb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for team and shooter persistence.
type Repository interface {
	CreateTeam(ctx context.Context, db bun.IDB, team *Team) error
	GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*Team, error)
	// GetTeamByName matches case-insensitively.
	GetTeamByName(ctx context.Context, db bun.IDB, name string) (*Team, error)
	TeamExists(ctx context.Context, db bun.IDB, name string) (bool, error)
	ListTeams(ctx context.Context, db bun.IDB) ([]Team, error)

	CreateShooter(ctx context.Context, db bun.IDB, shooter *Shooter) error
	GetShooter(ctx context.Context, db bun.IDB, id uuid.UUID) (*Shooter, error)
	// ShooterExists matches (first, last, email) case-insensitively.
	ShooterExists(ctx context.Context, db bun.IDB, first, last, email string) (bool, error)
	ListShooters(ctx context.Context, db bun.IDB) ([]Shooter, error)
	UpdateShooterAverage(ctx context.Context, db bun.IDB, id uuid.UUID, average float64) error

	// ListSeasonTeams returns every (season, team) pair with scores,
	// newest season first, then by team name.
	ListSeasonTeams(ctx context.Context, db bun.IDB) ([]SeasonTeam, error)
	// ListTeamsForSeason returns the teams with scores in season, by name.
	ListTeamsForSeason(ctx context.Context, db bun.IDB, season int) ([]Team, error)
}
