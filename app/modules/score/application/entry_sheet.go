package scoreservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	scoredomain "github.com/Black-And-White-Club/citl/app/modules/score/domain"
	"github.com/Black-And-White-Club/citl/internal/results"
)

// EntrySheet returns the blank weekly form for a team: every shooter who has
// shot for it this season with zeroed bunkers, dated today, and the week
// after the latest one recorded.
func (s *ScoreService) EntrySheet(ctx context.Context, teamName string, season int) (*scoredomain.EntrySheet, error) {
	sheetTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[scoredomain.EntrySheet, error], error) {
		return s.entrySheetLogic(ctx, db, teamName, season)
	}

	result, err := withTelemetry(s, ctx, "EntrySheet", teamName, func(ctx context.Context) (results.OperationResult[scoredomain.EntrySheet, error], error) {
		return runInTx(s, ctx, sheetTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return result.Success, nil
}

func (s *ScoreService) entrySheetLogic(ctx context.Context, db bun.IDB, teamName string, season int) (results.OperationResult[scoredomain.EntrySheet, error], error) {
	team, err := s.lookupTeam(ctx, db, teamName)
	if errors.Is(err, scoredomain.ErrTeamNotFound) {
		return results.FailureResult[scoredomain.EntrySheet, error](err), nil
	}
	if err != nil {
		return results.OperationResult[scoredomain.EntrySheet, error]{}, fmt.Errorf("failed to get team: %w", err)
	}

	roster, err := s.repo.ListTeamShooters(ctx, db, team.Name, season)
	if err != nil {
		return results.OperationResult[scoredomain.EntrySheet, error]{}, err
	}
	rows, err := s.repo.ListScorecardRows(ctx, db, team.Name, season)
	if err != nil {
		return results.OperationResult[scoredomain.EntrySheet, error]{}, err
	}

	latest := scoredomain.MinWeek
	for _, r := range rows {
		latest = max(latest, r.Week)
	}

	sheet := scoredomain.EntrySheet{
		Team:      team.Name,
		Season:    season,
		MatchDate: dateOnly(s.now()),
		Week:      min(latest+1, scoredomain.MaxWeek),
		Rows:      make([]scoredomain.EntrySheetRow, 0, len(roster)),
	}
	for _, r := range roster {
		sheet.Rows = append(sheet.Rows, scoredomain.EntrySheetRow{
			ShooterID: r.ShooterID,
			Name:      r.FirstName + " " + r.LastName,
		})
	}
	return results.SuccessResult[scoredomain.EntrySheet, error](sheet), nil
}
