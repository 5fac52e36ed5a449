package scorecard

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/citl/app/eventbus"
	scoreevents "github.com/Black-And-White-Club/citl/app/events/score"
	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
	scorecardservice "github.com/Black-And-White-Club/citl/app/modules/scorecard/application"
	scorecarddomain "github.com/Black-And-White-Club/citl/app/modules/scorecard/domain"
	scorecardcache "github.com/Black-And-White-Club/citl/app/modules/scorecard/infrastructure/cache"
	"github.com/Black-And-White-Club/citl/internal/observability"
)

// RefreshHandlerName names the average refresh consumer on the router.
const RefreshHandlerName = "scorecard.refresh_average"

// Module renders scorecards and keeps shooter averages current.
type Module struct {
	Service scorecardservice.Service
}

// NewScorecardModule wires the scorecard service and subscribes it to
// recorded scores. variant and keyMode are the configured defaults.
func NewScorecardModule(
	ctx context.Context,
	obs observability.Observability,
	router *message.Router,
	sub message.Subscriber,
	scores scoredb.Repository,
	shooters leaguedb.Repository,
	cache scorecardcache.Cache,
	variant, keyMode string,
	db *bun.DB,
) (*Module, error) {
	obs.Logger.InfoContext(ctx, "scorecard.NewScorecardModule initializing")

	v, err := scorecarddomain.ParseVariant(variant)
	if err != nil {
		return nil, fmt.Errorf("scorecard default variant: %w", err)
	}
	k, err := scorecarddomain.ParseKeyMode(keyMode)
	if err != nil {
		return nil, fmt.Errorf("scorecard default key mode: %w", err)
	}
	defaults := scorecarddomain.Options{Variant: v, KeyMode: k}

	service := scorecardservice.NewScorecardService(scores, shooters, cache, defaults, obs.Logger, obs.Metrics, obs.Tracer, db)

	if router != nil {
		eventbus.AddConsumer(router, RefreshHandlerName, scoreevents.ScoreRecordedV1, sub, obs.Logger, service.RefreshShooterAverage)
	}

	return &Module{Service: service}, nil
}
