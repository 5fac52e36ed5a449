package leaguedb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Team is a row of the teams table.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID        uuid.UUID `bun:"id,pk,type:varchar(36)"`
	Name      string    `bun:"name,notnull,unique,type:varchar(100)"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// Shooter is a row of the shooters table. Average is maintained by the
// scorecard module whenever one of the shooter's scores changes.
type Shooter struct {
	bun.BaseModel `bun:"table:shooters,alias:sh"`

	ID        uuid.UUID `bun:"id,pk,type:varchar(36)"`
	FirstName string    `bun:"first_name,notnull,type:varchar(100)"`
	LastName  string    `bun:"last_name,notnull,type:varchar(100)"`
	Email     string    `bun:"email,notnull,type:varchar(254)"`
	Rookie    bool      `bun:"rookie,notnull"`
	Guest     bool      `bun:"guest,notnull"`
	Captain   bool      `bun:"captain,notnull"`
	Average   float64   `bun:"average,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// SeasonTeam is one distinct (season, team) pair that has scores.
type SeasonTeam struct {
	Season   int    `bun:"season"`
	TeamName string `bun:"team_name"`
}
