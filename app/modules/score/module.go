package score

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/citl/app/eventbus"
	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	scoreservice "github.com/Black-And-White-Club/citl/app/modules/score/application"
	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/citl/internal/observability"
)

// Module owns weekly score entry and sheet imports.
type Module struct {
	Service    scoreservice.Service
	Repository scoredb.Repository
}

// NewScoreModule wires score entry against the league roster.
func NewScoreModule(ctx context.Context, obs observability.Observability, pub eventbus.Publisher, roster leaguedb.Repository, db *bun.DB) *Module {
	obs.Logger.InfoContext(ctx, "score.NewScoreModule initializing")

	repo := scoredb.NewRepository(db)
	service := scoreservice.NewScoreService(repo, roster, pub, obs.Logger, obs.Metrics, obs.Tracer, db)

	return &Module{Service: service, Repository: repo}
}
