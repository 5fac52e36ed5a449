package web

import (
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/Black-And-White-Club/citl/pkg/jwt"
)

// RouterConfig holds what the router needs beyond the handlers.
type RouterConfig struct {
	Tokens         jwt.Service
	AllowedOrigins []string
	RateLimit      rate.Limit
	RateBurst      int
	// TrustedProxies are the peers whose forwarding headers name the client.
	TrustedProxies []netip.Prefix
	// Instrument wraps every request when set.
	Instrument func(http.Handler) http.Handler
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// NewRouter mounts the public pages, the JSON API and the admin API.
func NewRouter(h *Handlers, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if cfg.Instrument != nil {
		r.Use(cfg.Instrument)
	}

	r.Get("/healthz", h.Health)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Get("/", h.IndexPage)
	r.Get("/seasons/{year}", h.SeasonPage)
	r.Get("/seasons/{year}/teams/{team}/scorecard", h.ScorecardPage)

	r.Route("/api", func(r chi.Router) {
		r.Use(CORSMiddleware(cfg.AllowedOrigins))
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/seasons", h.ListSeasons)
		r.Get("/seasons/{year}", h.GetSeason)
		r.Get("/seasons/{year}/teams/{team}/scorecard", h.GetScorecard)
		r.Get("/seasons/{year}/teams/{team}/scorecard.xlsx", h.ExportScorecard)
		r.Get("/seasons/{year}/teams/{team}/chart.png", h.ScorecardChart)

		r.Route("/admin", func(r chi.Router) {
			burst := cfg.RateBurst
			if burst <= 0 {
				burst = 1
			}
			limit := cfg.RateLimit
			if limit <= 0 {
				limit = rate.Inf
			}
			r.Use(RateLimitMiddleware(NewAdminLimiter(limit, burst), NewClientResolver(cfg.TrustedProxies)))
			r.Use(RequireRole(cfg.Tokens, jwt.RoleLeagueAdmin))

			r.Get("/overview", h.Overview)
			r.Post("/teams", h.CreateTeam)
			r.Post("/teams/bulk", h.CreateTeams)
			r.Post("/shooters", h.RegisterShooter)
			r.Post("/shooters/bulk", h.RegisterShooters)
			r.Get("/teams/{team}/score-sheet", h.ScoreSheet)
			r.Post("/teams/{team}/scores", h.RecordScores)
			r.Post("/teams/{team}/scores/import", h.ImportScores)
		})
	})

	return r
}
