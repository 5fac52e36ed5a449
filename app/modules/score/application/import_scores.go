package scoreservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	scoredomain "github.com/Black-And-White-Club/citl/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/citl/internal/results"
)

// ImportScores records an uploaded score sheet for one team. Names are
// matched against the shooters who have shot for the team in the row's
// season; rows that cannot be matched or validated are reported as error
// notices and the rest follow the RecordWeeklyScores rules.
func (s *ScoreService) ImportScores(ctx context.Context, teamName, filename string, data []byte, fallbackDate time.Time) (*scoredomain.RecordResult, error) {
	if fallbackDate.IsZero() {
		fallbackDate = s.now()
	}
	fallbackDate = dateOnly(fallbackDate)

	importTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[recordOutcome, error], error) {
		return s.importLogic(ctx, db, teamName, filename, data, fallbackDate)
	}

	result, err := withTelemetry(s, ctx, "ImportScores", teamName, func(ctx context.Context) (results.OperationResult[recordOutcome, error], error) {
		return runInTx(s, ctx, importTx)
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

type importGroup struct {
	date time.Time
	week int
	rows []scoredomain.ImportRow
}

func (s *ScoreService) importLogic(ctx context.Context, db bun.IDB, teamName, filename string, data []byte, fallbackDate time.Time) (results.OperationResult[recordOutcome, error], error) {
	parser, err := s.parsers.GetParser(filename)
	if err != nil {
		return results.FailureResult[recordOutcome, error](fmt.Errorf("%w: %v", scoredomain.ErrInvalidSheet, err)), nil
	}
	rows, err := parser.Parse(data)
	if err != nil {
		return results.FailureResult[recordOutcome, error](fmt.Errorf("%w: %v", scoredomain.ErrInvalidSheet, err)), nil
	}

	team, err := s.lookupTeam(ctx, db, teamName)
	if errors.Is(err, scoredomain.ErrTeamNotFound) {
		return results.FailureResult[recordOutcome, error](err), nil
	}
	if err != nil {
		return results.OperationResult[recordOutcome, error]{}, fmt.Errorf("failed to get team: %w", err)
	}

	out := recordOutcome{result: scoredomain.RecordResult{Notices: []scoredomain.Notice{}}}
	groups := groupImportRows(rows, fallbackDate, &out.result)

	rosters := make(map[int]map[string][]scoredb.RosterEntry)
	for _, g := range groups {
		season := g.date.Year()
		roster, ok := rosters[season]
		if !ok {
			entries, err := s.repo.ListTeamShooters(ctx, db, team.Name, season)
			if err != nil {
				return results.OperationResult[recordOutcome, error]{}, err
			}
			roster = indexRoster(entries)
			rosters[season] = roster
		}

		req := scoredomain.WeeklyScoresRequest{TeamName: team.Name, MatchDate: g.date, Week: g.week}
		for _, row := range g.rows {
			matches := roster[nameKey(row.FirstName, row.LastName)]
			switch len(matches) {
			case 0:
				out.result.Skipped++
				out.result.Notices = append(out.result.Notices, scoredomain.Error("Line %d: %s %s is not on %s for %d. Score not added.", row.Line, row.FirstName, row.LastName, team.Name, season))
			case 1:
				req.Entries = append(req.Entries, scoredomain.WeeklyScoreEntry{
					ShooterID: matches[0].ShooterID,
					BunkerOne: row.BunkerOne,
					BunkerTwo: row.BunkerTwo,
				})
			default:
				out.result.Skipped++
				out.result.Notices = append(out.result.Notices, scoredomain.Error("Line %d: %s %s matches more than one shooter on %s. Score not added.", row.Line, row.FirstName, row.LastName, team.Name))
			}
		}
		if len(req.Entries) == 0 {
			continue
		}

		res, err := s.recordLogic(ctx, db, req)
		if err != nil {
			return res, err
		}
		if res.IsFailure() {
			return res, nil
		}
		out.merge(*res.Success)
	}

	return results.SuccessResult[recordOutcome, error](out), nil
}

// groupImportRows drops rows that fail validation, noting each on result,
// and groups the rest by match date and week in first-seen order.
func groupImportRows(rows []scoredomain.ImportRow, fallbackDate time.Time, result *scoredomain.RecordResult) []*importGroup {
	var groups []*importGroup
	index := make(map[string]*importGroup)

	for _, row := range rows {
		if row.Week < scoredomain.MinWeek || row.Week > scoredomain.MaxWeek {
			result.Skipped++
			result.Notices = append(result.Notices, scoredomain.Error("Line %d: %v, got %d. Score not added.", row.Line, scoredomain.ErrInvalidWeek, row.Week))
			continue
		}
		if row.BunkerOne < 0 || row.BunkerTwo < 0 {
			result.Skipped++
			result.Notices = append(result.Notices, scoredomain.Error("Line %d: %v. Score not added.", row.Line, scoredomain.ErrInvalidScore))
			continue
		}

		date := fallbackDate
		if !row.MatchDate.IsZero() {
			date = dateOnly(row.MatchDate)
		}
		key := fmt.Sprintf("%s/%d", date.Format(time.DateOnly), row.Week)
		g, ok := index[key]
		if !ok {
			g = &importGroup{date: date, week: row.Week}
			index[key] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, row)
	}
	return groups
}

func indexRoster(entries []scoredb.RosterEntry) map[string][]scoredb.RosterEntry {
	idx := make(map[string][]scoredb.RosterEntry, len(entries))
	for _, e := range entries {
		k := nameKey(e.FirstName, e.LastName)
		idx[k] = append(idx[k], e)
	}
	return idx
}

func nameKey(first, last string) string {
	return strings.ToLower(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
