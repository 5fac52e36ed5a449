package scorecardservice

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	scoreevents "github.com/Black-And-White-Club/citl/app/events/score"
	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	scorecarddomain "github.com/Black-And-White-Club/citl/app/modules/scorecard/domain"
	"github.com/Black-And-White-Club/citl/internal/attr"
	"github.com/Black-And-White-Club/citl/internal/results"
)

// RefreshShooterAverage recomputes the shooter's season average after one
// of their scores is recorded and drops the team's cached scorecards.
func (s *ScorecardService) RefreshShooterAverage(ctx context.Context, ev *scoreevents.ScoreRecordedPayloadV1) error {
	refreshTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[float64, error], error) {
		return s.refreshAverageLogic(ctx, db, ev)
	}

	result, err := withTelemetry(s, ctx, "RefreshShooterAverage", ev.ShooterID.String(), func(ctx context.Context) (results.OperationResult[float64, error], error) {
		return runInTx(s, ctx, refreshTx)
	})
	if err != nil {
		return err
	}

	if err := s.cache.InvalidateTeamSeason(ctx, ev.TeamName, ev.Season); err != nil {
		s.logger.WarnContext(ctx, "Failed to invalidate cached scorecards",
			attr.ExtractCorrelationID(ctx),
			attr.String("team", ev.TeamName),
			attr.Int("season", ev.Season),
			attr.Error(err),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Shooter average refreshed",
			attr.ExtractCorrelationID(ctx),
			attr.UUID("shooter_id", ev.ShooterID),
			attr.Any("average", *result.Success),
		)
	}
	return nil
}

func (s *ScorecardService) refreshAverageLogic(ctx context.Context, db bun.IDB, ev *scoreevents.ScoreRecordedPayloadV1) (results.OperationResult[float64, error], error) {
	rows, err := s.rows.ListShooterSeasonRows(ctx, db, ev.ShooterID, ev.Season)
	if err != nil {
		return results.OperationResult[float64, error]{}, err
	}
	if len(rows) == 0 {
		return results.FailureResult[float64, error](scorecarddomain.ErrScorecardNotFound), nil
	}

	opts := scorecarddomain.Options{Variant: s.defaults.Variant, KeyMode: scorecarddomain.KeyByShooterID}
	sc, err := scorecarddomain.Build(toRecords(rows), opts)
	if err != nil {
		return results.OperationResult[float64, error]{}, err
	}
	entry, ok := sc.Entry(ev.ShooterID.String())
	if !ok {
		return results.FailureResult[float64, error](scorecarddomain.ErrScorecardNotFound), nil
	}

	if err := s.averages.UpdateShooterAverage(ctx, db, ev.ShooterID, entry.Average); err != nil {
		if errors.Is(err, leaguedb.ErrNotFound) {
			return results.FailureResult[float64, error](err), nil
		}
		return results.OperationResult[float64, error]{}, err
	}
	return results.SuccessResult[float64, error](entry.Average), nil
}
