package scoreservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	scoredomain "github.com/Black-And-White-Club/citl/app/modules/score/domain"
)

// Service records weekly scores.
type Service interface {
	RecordWeeklyScores(ctx context.Context, req scoredomain.WeeklyScoresRequest) (*scoredomain.RecordResult, error)
	EntrySheet(ctx context.Context, teamName string, season int) (*scoredomain.EntrySheet, error)
	ImportScores(ctx context.Context, teamName, filename string, data []byte, fallbackDate time.Time) (*scoredomain.RecordResult, error)
}

// Roster is the part of the league repository score entry reads.
type Roster interface {
	GetTeamByName(ctx context.Context, db bun.IDB, name string) (*leaguedb.Team, error)
	GetShooter(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Shooter, error)
}
