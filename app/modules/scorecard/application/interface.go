package scorecardservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	scoreevents "github.com/Black-And-White-Club/citl/app/events/score"
	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
	scorecarddomain "github.com/Black-And-White-Club/citl/app/modules/scorecard/domain"
)

// Service renders scorecards and keeps shooter averages current.
type Service interface {
	Options(variant, keyMode string) (scorecarddomain.Options, error)
	GetScorecard(ctx context.Context, season int, team string, opts scorecarddomain.Options) (*scorecarddomain.View, error)
	ExportXLSX(ctx context.Context, season int, team string, opts scorecarddomain.Options) ([]byte, error)
	RenderChart(ctx context.Context, season int, team string, opts scorecarddomain.Options) ([]byte, error)
	RefreshShooterAverage(ctx context.Context, ev *scoreevents.ScoreRecordedPayloadV1) error
}

// ScoreRows reads the stored scores a scorecard is built from.
type ScoreRows interface {
	ListScorecardRows(ctx context.Context, db bun.IDB, teamName string, season int) ([]scoredb.ScorecardRow, error)
	ListShooterSeasonRows(ctx context.Context, db bun.IDB, shooterID uuid.UUID, season int) ([]scoredb.ScorecardRow, error)
}

// AverageWriter persists a shooter's league average.
type AverageWriter interface {
	UpdateShooterAverage(ctx context.Context, db bun.IDB, id uuid.UUID, average float64) error
}
