package league

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/citl/app/eventbus"
	leagueservice "github.com/Black-And-White-Club/citl/app/modules/league/application"
	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/citl/internal/observability"
)

// Module owns teams, shooters and seasons.
type Module struct {
	Service    leagueservice.Service
	Repository leaguedb.Repository
}

// NewLeagueModule wires the league repository and service. Registration
// writes the onboarding score through the score repository.
func NewLeagueModule(ctx context.Context, obs observability.Observability, pub eventbus.Publisher, db *bun.DB) *Module {
	obs.Logger.InfoContext(ctx, "league.NewLeagueModule initializing")

	repo := leaguedb.NewRepository(db)
	service := leagueservice.NewLeagueService(repo, scoredb.NewRepository(db), pub, obs.Logger, obs.Metrics, obs.Tracer, db)

	return &Module{Service: service, Repository: repo}
}
