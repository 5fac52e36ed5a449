package leagueservice

import (
	"context"

	"github.com/uptrace/bun"

	leaguedomain "github.com/Black-And-White-Club/citl/app/modules/league/domain"
	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
)

// Service manages teams, shooters and seasons.
type Service interface {
	CreateTeam(ctx context.Context, name string) (*leaguedomain.Team, error)
	CreateTeams(ctx context.Context, names []string) (*leaguedomain.BulkResult, error)
	RegisterShooter(ctx context.Context, reg leaguedomain.ShooterRegistration) (*leaguedomain.Shooter, error)
	RegisterShooters(ctx context.Context, regs []leaguedomain.ShooterRegistration) (*leaguedomain.BulkResult, error)
	ListTeams(ctx context.Context) ([]leaguedomain.Team, error)
	ListSeasons(ctx context.Context) ([]leaguedomain.Season, error)
	GetSeason(ctx context.Context, year int) (*leaguedomain.Season, error)
	Overview(ctx context.Context) (*leaguedomain.Overview, error)
}

// ScoreWriter stores the onboarding score written at registration.
type ScoreWriter interface {
	Create(ctx context.Context, db bun.IDB, score *scoredb.Score) error
}
