package scoreservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	scoreevents "github.com/Black-And-White-Club/citl/app/events/score"
	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	scoredomain "github.com/Black-And-White-Club/citl/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/citl/internal/results"
)

// recordOutcome carries the events to publish once the transaction commits.
type recordOutcome struct {
	result scoredomain.RecordResult
	events []scoreevents.ScoreRecordedPayloadV1
}

func (o *recordOutcome) merge(other recordOutcome) {
	o.result.Recorded += other.result.Recorded
	o.result.Skipped += other.result.Skipped
	o.result.Notices = append(o.result.Notices, other.result.Notices...)
	o.events = append(o.events, other.events...)
}

// RecordWeeklyScores stores a team's week. Zero totals are skipped, a shooter
// who already has a score for the week gets a warning instead of a second
// row. A zero MatchDate is today.
func (s *ScoreService) RecordWeeklyScores(ctx context.Context, req scoredomain.WeeklyScoresRequest) (*scoredomain.RecordResult, error) {
	if req.MatchDate.IsZero() {
		req.MatchDate = dateOnly(s.now())
	}

	recordTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[recordOutcome, error], error) {
		return s.recordLogic(ctx, db, req)
	}

	result, err := withTelemetry(s, ctx, "RecordWeeklyScores", req.TeamName, func(ctx context.Context) (results.OperationResult[recordOutcome, error], error) {
		return runInTx(s, ctx, recordTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}

	s.publishRecorded(ctx, result.Success.events)
	return &result.Success.result, nil
}

func validateWeeklyRequest(req scoredomain.WeeklyScoresRequest) error {
	if len(req.Entries) == 0 {
		return scoredomain.ErrNoEntries
	}
	if req.Week < scoredomain.MinWeek || req.Week > scoredomain.MaxWeek {
		return fmt.Errorf("%w: got %d", scoredomain.ErrInvalidWeek, req.Week)
	}
	for _, e := range req.Entries {
		if e.BunkerOne < 0 || e.BunkerTwo < 0 {
			return fmt.Errorf("%w: shooter %s", scoredomain.ErrInvalidScore, e.ShooterID)
		}
	}
	return nil
}

func (s *ScoreService) lookupTeam(ctx context.Context, db bun.IDB, name string) (*leaguedb.Team, error) {
	team, err := s.roster.GetTeamByName(ctx, db, name)
	if errors.Is(err, leaguedb.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", scoredomain.ErrTeamNotFound, name)
	}
	return team, err
}

func (s *ScoreService) recordLogic(ctx context.Context, db bun.IDB, req scoredomain.WeeklyScoresRequest) (results.OperationResult[recordOutcome, error], error) {
	if err := validateWeeklyRequest(req); err != nil {
		return results.FailureResult[recordOutcome, error](err), nil
	}

	team, err := s.lookupTeam(ctx, db, req.TeamName)
	if errors.Is(err, scoredomain.ErrTeamNotFound) {
		return results.FailureResult[recordOutcome, error](err), nil
	}
	if err != nil {
		return results.OperationResult[recordOutcome, error]{}, fmt.Errorf("failed to get team: %w", err)
	}

	season := req.MatchDate.Year()
	out := recordOutcome{result: scoredomain.RecordResult{Notices: []scoredomain.Notice{}}}

	for _, e := range req.Entries {
		if e.Total() == 0 {
			out.result.Skipped++
			continue
		}

		shooter, err := s.roster.GetShooter(ctx, db, e.ShooterID)
		if errors.Is(err, leaguedb.ErrNotFound) {
			out.result.Skipped++
			out.result.Notices = append(out.result.Notices, scoredomain.Error("Unknown shooter %s. Score not added.", e.ShooterID))
			continue
		}
		if err != nil {
			return results.OperationResult[recordOutcome, error]{}, fmt.Errorf("failed to get shooter: %w", err)
		}
		name := shooter.FirstName + " " + shooter.LastName

		duplicate := func() {
			out.result.Skipped++
			out.result.Notices = append(out.result.Notices, scoredomain.Warning("%s already has a score for this week. Score not added.", name))
		}

		exists, err := s.repo.Exists(ctx, db, e.ShooterID, season, req.Week)
		if err != nil {
			return results.OperationResult[recordOutcome, error]{}, err
		}
		if exists {
			duplicate()
			continue
		}

		b1, b2 := e.BunkerOne, e.BunkerTwo
		score := &scoredb.Score{
			ShooterID: e.ShooterID,
			TeamID:    team.ID,
			MatchDate: req.MatchDate,
			Week:      req.Week,
			BunkerOne: &b1,
			BunkerTwo: &b2,
		}
		// A concurrent submission can land between Exists and Create; the
		// unique index turns that into ErrDuplicateScore.
		if err := s.repo.Create(ctx, db, score); err != nil {
			if errors.Is(err, scoredb.ErrDuplicateScore) {
				duplicate()
				continue
			}
			return results.OperationResult[recordOutcome, error]{}, err
		}

		out.result.Recorded++
		out.result.Notices = append(out.result.Notices, scoredomain.Info("Score added for %s", name))
		out.events = append(out.events, scoreevents.ScoreRecordedPayloadV1{
			ShooterID: e.ShooterID,
			TeamID:    team.ID,
			TeamName:  team.Name,
			Season:    season,
			Week:      req.Week,
		})
	}

	return results.SuccessResult[recordOutcome, error](out), nil
}
