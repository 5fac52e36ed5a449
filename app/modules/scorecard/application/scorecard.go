package scorecardservice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	scorecarddomain "github.com/Black-And-White-Club/citl/app/modules/scorecard/domain"
	scorecardcache "github.com/Black-And-White-Club/citl/app/modules/scorecard/infrastructure/cache"
	"github.com/Black-And-White-Club/citl/internal/attr"
	"github.com/Black-And-White-Club/citl/internal/results"
)

// GetScorecard returns a team's scorecard for a season, from cache when
// possible. A team with no scores that season is ErrScorecardNotFound.
func (s *ScorecardService) GetScorecard(ctx context.Context, season int, team string, opts scorecarddomain.Options) (*scorecarddomain.View, error) {
	getTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[scorecarddomain.View, error], error) {
		return s.getScorecardLogic(ctx, db, season, team, opts)
	}

	id := fmt.Sprintf("%d/%s", season, team)
	result, err := withTelemetry(s, ctx, "GetScorecard", id, func(ctx context.Context) (results.OperationResult[scorecarddomain.View, error], error) {
		return runInTx(s, ctx, getTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return result.Success, nil
}

func (s *ScorecardService) getScorecardLogic(ctx context.Context, db bun.IDB, season int, team string, opts scorecarddomain.Options) (results.OperationResult[scorecarddomain.View, error], error) {
	// The generation is read before the rows so a view rendered from rows
	// that predate an invalidation lands under a key nobody reads.
	key, cacheable := s.cacheKey(ctx, season, team, opts)
	if cacheable {
		if view, ok := s.cached(ctx, key); ok {
			return results.SuccessResult[scorecarddomain.View, error](view), nil
		}
	}

	rows, err := s.rows.ListScorecardRows(ctx, db, team, season)
	if err != nil {
		return results.OperationResult[scorecarddomain.View, error]{}, err
	}
	if len(rows) == 0 {
		return results.FailureResult[scorecarddomain.View, error](fmt.Errorf("%w: %s %d", scorecarddomain.ErrScorecardNotFound, team, season)), nil
	}

	sc, err := scorecarddomain.Build(toRecords(rows), opts)
	if err != nil {
		return results.OperationResult[scorecarddomain.View, error]{}, err
	}
	if s.metrics != nil {
		s.metrics.RecordScorecardBuild(ctx, opts.Variant.String(), sc.Len())
	}

	if rows[0].TeamName != "" {
		team = rows[0].TeamName
	}
	view := scorecarddomain.NewView(sc, team, season, opts)
	if cacheable {
		s.store(ctx, key, view)
	}
	return results.SuccessResult[scorecarddomain.View, error](view), nil
}

// cacheKey names the cache entry for the team season's current generation.
// Without a generation the cache is bypassed for this request.
func (s *ScorecardService) cacheKey(ctx context.Context, season int, team string, opts scorecarddomain.Options) (string, bool) {
	gen, err := s.cache.Generation(ctx, team, season)
	if err != nil {
		s.logger.WarnContext(ctx, "Scorecard cache generation unavailable",
			attr.ExtractCorrelationID(ctx),
			attr.String("team", team),
			attr.Int("season", season),
			attr.Error(err),
		)
		return "", false
	}
	return scorecardcache.Key(season, team, gen, opts.Variant.String(), opts.KeyMode.String()), true
}

// cached reads key from the cache. Cache failures count as misses.
func (s *ScorecardService) cached(ctx context.Context, key string) (scorecarddomain.View, bool) {
	var view scorecarddomain.View
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "Scorecard cache read failed", attr.ExtractCorrelationID(ctx), attr.String("key", key), attr.Error(err))
	}
	if ok {
		if err := json.Unmarshal(data, &view); err != nil {
			s.logger.WarnContext(ctx, "Discarding unreadable cached scorecard", attr.String("key", key), attr.Error(err))
			ok = false
		}
	}
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(ctx, ok)
	}
	return view, ok
}

func (s *ScorecardService) store(ctx context.Context, key string, view scorecarddomain.View) {
	data, err := json.Marshal(view)
	if err == nil {
		err = s.cache.Set(ctx, key, data)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Scorecard cache write failed", attr.ExtractCorrelationID(ctx), attr.String("key", key), attr.Error(err))
	}
}
