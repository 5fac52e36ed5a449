package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheus(reg, "citl")
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordOperationAttempt(ctx, "CreateTeam", "LeagueService")
	m.RecordOperationSuccess(ctx, "CreateTeam", "LeagueService")
	m.RecordOperationDuration(ctx, "CreateTeam", "LeagueService", 10*time.Millisecond)
	m.RecordCacheLookup(ctx, true)
	m.RecordCacheLookup(ctx, false)
	m.RecordCacheLookup(ctx, false)
	m.RecordScorecardBuild(ctx, "zero-fill", 12)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("LeagueService", "CreateTeam", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cache.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.builds.WithLabelValues("zero-fill")))
}

func TestPrometheus_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheus(reg, "citl")
	require.NoError(t, err)
	_, err = NewPrometheus(reg, "citl")
	assert.Error(t, err)
}

func TestPrometheus_Middleware(t *testing.T) {
	m, err := NewPrometheus(prometheus.NewRegistry(), "citl")
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/seasons/{year}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, year := range []string{"2023", "2024"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/seasons/"+year, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/seasons/{year}", "418")))
}
