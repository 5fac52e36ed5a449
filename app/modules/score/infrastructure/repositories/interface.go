package scoredb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for score persistence.
type Repository interface {
	// Create stores score, deriving Season from MatchDate.
	Create(ctx context.Context, db bun.IDB, score *Score) error
	// Exists reports whether shooter already has a score for week in season.
	Exists(ctx context.Context, db bun.IDB, shooterID uuid.UUID, season, week int) (bool, error)
	// ListScorecardRows returns a team's scores for a season ordered by
	// last name, first name, shooter, week.
	ListScorecardRows(ctx context.Context, db bun.IDB, teamName string, season int) ([]ScorecardRow, error)
	// ListShooterSeasonRows returns every score a shooter has in season, by week.
	ListShooterSeasonRows(ctx context.Context, db bun.IDB, shooterID uuid.UUID, season int) ([]ScorecardRow, error)
	// ListTeamShooters returns the distinct shooters with scores for a team
	// in season, by last then first name.
	ListTeamShooters(ctx context.Context, db bun.IDB, teamName string, season int) ([]RosterEntry, error)
}
