// Package observability builds the logger, tracer and metrics registry
// handed to every module.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Black-And-White-Club/citl/internal/metrics"
)

const serviceName = "citl"

// Config selects the log format and level.
type Config struct {
	Environment    string
	LogLevel       string
	MetricsEnabled bool
}

// Observability bundles what modules need to log, trace and count.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
	Metrics  metrics.ScorecardMetrics
	// HTTPMetrics is nil when metrics are disabled.
	HTTPMetrics *metrics.Prometheus
}

// New builds the logger and, when enabled, a Prometheus registry with Go
// runtime collectors. Tracing uses the global otel provider, which stays a
// noop unless an SDK is installed.
func New(cfg Config, w io.Writer) (Observability, error) {
	if w == nil {
		w = os.Stdout
	}
	logger, err := NewLogger(cfg.Environment, cfg.LogLevel, w)
	if err != nil {
		return Observability{}, err
	}

	obs := Observability{
		Logger:  logger,
		Tracer:  otel.Tracer(serviceName),
		Metrics: metrics.NewNoop(),
	}
	if !cfg.MetricsEnabled {
		return obs, nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.NewPrometheus(reg, serviceName)
	if err != nil {
		return Observability{}, fmt.Errorf("failed to register metrics: %w", err)
	}
	obs.Registry = reg
	obs.Metrics = m
	obs.HTTPMetrics = m
	return obs, nil
}

// NewLogger returns a JSON logger, or a text logger in development.
func NewLogger(environment, level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if strings.EqualFold(environment, "development") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With(slog.String("service", serviceName)), nil
}
