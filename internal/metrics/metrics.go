// Package metrics records service, cache and HTTP metrics on a Prometheus registry.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// ServiceMetrics is recorded by every application service.
type ServiceMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
}

// ScorecardMetrics adds the scorecard build and cache counters.
type ScorecardMetrics interface {
	ServiceMetrics
	RecordScorecardBuild(ctx context.Context, variant string, shooters int)
	RecordCacheLookup(ctx context.Context, hit bool)
}

// Prometheus implements ScorecardMetrics.
type Prometheus struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	builds     *prometheus.CounterVec
	shooters   prometheus.Histogram
	cache      *prometheus.CounterVec
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewPrometheus registers the collectors on reg.
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	m := &Prometheus{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "service_operations_total",
			Help:      "Service operations by outcome.",
		}, []string{"service", "operation", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "service_operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scorecard_builds_total",
			Help:      "Scorecards built from stored scores.",
		}, []string{"variant"}),
		shooters: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scorecard_shooters",
			Help:      "Shooters per built scorecard.",
			Buckets:   []float64{1, 5, 10, 20, 40, 80},
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scorecard_cache_lookups_total",
			Help:      "Scorecard cache lookups by result.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.durations, m.builds, m.shooters, m.cache, m.requests, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Prometheus) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "attempt").Inc()
}

func (m *Prometheus) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "success").Inc()
}

func (m *Prometheus) RecordOperationFailure(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "failure").Inc()
}

func (m *Prometheus) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.durations.WithLabelValues(service, operation).Observe(d.Seconds())
}

func (m *Prometheus) RecordScorecardBuild(_ context.Context, variant string, shooters int) {
	m.builds.WithLabelValues(variant).Inc()
	m.shooters.Observe(float64(shooters))
}

func (m *Prometheus) RecordCacheLookup(_ context.Context, hit bool) {
	if hit {
		m.cache.WithLabelValues("hit").Inc()
		return
	}
	m.cache.WithLabelValues("miss").Inc()
}

// Middleware counts requests by their chi route pattern so path parameters
// do not explode the label space.
func (m *Prometheus) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Noop discards everything.
type Noop struct{}

// NewNoop returns metrics that record nothing.
func NewNoop() *Noop { return &Noop{} }

func (*Noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (*Noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (*Noop) RecordOperationFailure(context.Context, string, string)                 {}
func (*Noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (*Noop) RecordScorecardBuild(context.Context, string, int)                      {}
func (*Noop) RecordCacheLookup(context.Context, bool)                                {}

var (
	_ ScorecardMetrics = (*Prometheus)(nil)
	_ ScorecardMetrics = (*Noop)(nil)
)
