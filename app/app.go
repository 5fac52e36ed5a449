// Package app assembles the modules, the event router and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"

	"github.com/Black-And-White-Club/citl/app/eventbus"
	"github.com/Black-And-White-Club/citl/app/modules/league"
	"github.com/Black-And-White-Club/citl/app/modules/score"
	"github.com/Black-And-White-Club/citl/app/modules/scorecard"
	scorecardcache "github.com/Black-And-White-Club/citl/app/modules/scorecard/infrastructure/cache"
	"github.com/Black-And-White-Club/citl/app/web"
	"github.com/Black-And-White-Club/citl/config"
	"github.com/Black-And-White-Club/citl/internal/attr"
	"github.com/Black-And-White-Club/citl/internal/observability"
	"github.com/Black-And-White-Club/citl/pkg/jwt"
)

const shutdownTimeout = 10 * time.Second

// App holds every long-lived component.
type App struct {
	Config          *config.Config
	Observability   observability.Observability
	DB              *bun.DB
	EventBus        *gochannel.GoChannel
	Router          *message.Router
	Redis           *redis.Client
	LeagueModule    *league.Module
	ScoreModule     *score.Module
	ScorecardModule *scorecard.Module
	Handler         http.Handler
}

// Initialize builds the application on an open database. Redis is optional;
// without an address the scorecard cache is disabled.
func Initialize(ctx context.Context, cfg *config.Config, obs observability.Observability, db *bun.DB) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	proxies, err := cfg.HTTP.ProxyPrefixes()
	if err != nil {
		return nil, err
	}

	logger := obs.Logger
	app := &App{Config: cfg, Observability: obs, DB: db}

	app.EventBus = eventbus.NewGoChannel(logger)
	router, err := eventbus.NewRouter(logger, obs.Registry)
	if err != nil {
		return nil, err
	}
	app.Router = router

	var cache scorecardcache.Cache = scorecardcache.Nop{}
	if cfg.Redis.Address != "" {
		client, err := scorecardcache.NewRedisClient(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		app.Redis = client
		cache = scorecardcache.NewRedis(client, cfg.Redis.TTL)
		logger.InfoContext(ctx, "Scorecard cache enabled", attr.String("address", cfg.Redis.Address))
	}

	app.LeagueModule = league.NewLeagueModule(ctx, obs, app.EventBus, db)
	app.ScoreModule = score.NewScoreModule(ctx, obs, app.EventBus, app.LeagueModule.Repository, db)
	app.ScorecardModule, err = scorecard.NewScorecardModule(
		ctx, obs, router, app.EventBus,
		app.ScoreModule.Repository, app.LeagueModule.Repository,
		cache, cfg.League.DefaultVariant, cfg.League.KeyMode, db,
	)
	if err != nil {
		app.closeClients()
		return nil, err
	}

	handlers, err := web.NewHandlers(app.LeagueModule.Service, app.ScoreModule.Service, app.ScorecardModule.Service, logger)
	if err != nil {
		app.closeClients()
		return nil, err
	}
	routerCfg := web.RouterConfig{
		Tokens:         jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.DefaultTTL),
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RateLimit:      rate.Limit(cfg.HTTP.RateLimit),
		RateBurst:      cfg.HTTP.RateBurst,
		TrustedProxies: proxies,
	}
	if obs.HTTPMetrics != nil {
		routerCfg.Instrument = obs.HTTPMetrics.Middleware
		routerCfg.Metrics = promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{})
	}
	app.Handler = web.NewRouter(handlers, routerCfg)

	return app, nil
}

// Run serves HTTP and consumes events until ctx is cancelled or either
// fails, then shuts both down.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	routerErr := make(chan error, 1)
	go func() {
		routerErr <- app.Router.Run(ctx)
	}()
	select {
	case <-app.Router.Running():
	case err := <-routerErr:
		return fmt.Errorf("event router stopped before start: %w", err)
	}

	srv := &http.Server{
		Addr:              app.Config.HTTP.Address,
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", attr.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	case err := <-serverErr:
		runErr = fmt.Errorf("http server: %w", err)
	case err := <-routerErr:
		if err != nil {
			runErr = fmt.Errorf("event router: %w", err)
		}
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", attr.Error(err))
	}
	cancel()
	return runErr
}

// Close releases the router, the bus and the redis client. The database
// belongs to the caller.
func (app *App) Close() error {
	var errs []error
	if app.Router != nil {
		if err := app.Router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close router: %w", err))
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
	}
	if err := app.closeClients(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (app *App) closeClients() error {
	if app.Redis == nil {
		return nil
	}
	err := app.Redis.Close()
	app.Redis = nil
	if err != nil {
		return fmt.Errorf("close redis: %w", err)
	}
	return nil
}
