package scorecardservice

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
	scorecardcache "github.com/Black-And-White-Club/citl/app/modules/scorecard/infrastructure/cache"
)

// ------------------------
// Fake Score Rows
// ------------------------

// FakeScoreRows provides a programmable stub for ScoreRows.
type FakeScoreRows struct {
	trace []string

	ListScorecardRowsFunc     func(ctx context.Context, db bun.IDB, teamName string, season int) ([]scoredb.ScorecardRow, error)
	ListShooterSeasonRowsFunc func(ctx context.Context, db bun.IDB, shooterID uuid.UUID, season int) ([]scoredb.ScorecardRow, error)
}

func NewFakeScoreRows() *FakeScoreRows {
	return &FakeScoreRows{trace: []string{}}
}

func (f *FakeScoreRows) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreRows) ListScorecardRows(ctx context.Context, db bun.IDB, teamName string, season int) ([]scoredb.ScorecardRow, error) {
	f.trace = append(f.trace, "ListScorecardRows")
	if f.ListScorecardRowsFunc != nil {
		return f.ListScorecardRowsFunc(ctx, db, teamName, season)
	}
	return nil, nil
}

func (f *FakeScoreRows) ListShooterSeasonRows(ctx context.Context, db bun.IDB, shooterID uuid.UUID, season int) ([]scoredb.ScorecardRow, error) {
	f.trace = append(f.trace, "ListShooterSeasonRows")
	if f.ListShooterSeasonRowsFunc != nil {
		return f.ListShooterSeasonRowsFunc(ctx, db, shooterID, season)
	}
	return nil, nil
}

// ------------------------
// Fake Average Writer
// ------------------------

type FakeAverageWriter struct {
	Averages map[uuid.UUID]float64
	Err      error
}

func NewFakeAverageWriter() *FakeAverageWriter {
	return &FakeAverageWriter{Averages: map[uuid.UUID]float64{}}
}

func (f *FakeAverageWriter) UpdateShooterAverage(_ context.Context, _ bun.IDB, id uuid.UUID, average float64) error {
	if f.Err != nil {
		return f.Err
	}
	f.Averages[id] = average
	return nil
}

// ------------------------
// Fake Cache
// ------------------------

type invalidation struct {
	team   string
	season int
}

// FakeCache is an in-memory scorecardcache.Cache. Invalidation advances the
// team season's generation and drops its entries.
type FakeCache struct {
	mu            sync.Mutex
	data          map[string][]byte
	generations   map[string]int64
	invalidations []invalidation

	GenerationErr error
	GetErr        error
	SetErr        error
	InvalidateErr error
}

func NewFakeCache() *FakeCache {
	return &FakeCache{data: map[string][]byte{}, generations: map[string]int64{}}
}

func generationID(team string, season int) string {
	return fmt.Sprintf("%s/%d", strings.ToLower(team), season)
}

func (f *FakeCache) Generation(_ context.Context, team string, season int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GenerationErr != nil {
		return 0, f.GenerationErr
	}
	return f.generations[generationID(team, season)], nil
}

func (f *FakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, false, f.GetErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *FakeCache) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetErr != nil {
		return f.SetErr
	}
	f.data[key] = value
	return nil
}

func (f *FakeCache) InvalidateTeamSeason(_ context.Context, team string, season int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidations = append(f.invalidations, invalidation{team: team, season: season})
	if f.InvalidateErr != nil {
		return f.InvalidateErr
	}
	f.generations[generationID(team, season)]++

	prefix := strings.TrimSuffix(scorecardcache.Key(season, team, 0, "", ""), "0::")
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
		}
	}
	return nil
}

func (f *FakeCache) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
