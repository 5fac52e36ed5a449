package scoredb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Score is one shooter's bunker pair for one week on one team. Season is the
// match date's year, stored so scorecards can filter without date functions.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	ID        uuid.UUID `bun:"id,pk,type:varchar(36)"`
	ShooterID uuid.UUID `bun:"shooter_id,notnull,type:varchar(36)"`
	TeamID    uuid.UUID `bun:"team_id,notnull,type:varchar(36)"`
	MatchDate time.Time `bun:"match_date,notnull,type:date"`
	Season    int       `bun:"season,notnull"`
	Week      int       `bun:"week,notnull"`
	BunkerOne *int      `bun:"bunker_one"`
	BunkerTwo *int      `bun:"bunker_two"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// ScorecardRow is a score joined with its shooter's name. TeamName is the
// stored spelling and is only filled by ListScorecardRows.
type ScorecardRow struct {
	TeamName  string    `bun:"team_name"`
	ShooterID uuid.UUID `bun:"shooter_id"`
	FirstName string    `bun:"first_name"`
	LastName  string    `bun:"last_name"`
	Week      int       `bun:"week"`
	BunkerOne *int      `bun:"bunker_one"`
	BunkerTwo *int      `bun:"bunker_two"`
}

// RosterEntry is a shooter who has shot for a team in a season.
type RosterEntry struct {
	ShooterID uuid.UUID `bun:"shooter_id"`
	FirstName string    `bun:"first_name"`
	LastName  string    `bun:"last_name"`
}
