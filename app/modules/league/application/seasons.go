package leagueservice

import (
	"context"
	"fmt"
	"strconv"

	"github.com/uptrace/bun"

	leaguedomain "github.com/Black-And-White-Club/citl/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/citl/internal/results"
)

// ListSeasons returns every season with scores, newest first, each with its
// teams by name.
func (s *LeagueService) ListSeasons(ctx context.Context) ([]leaguedomain.Season, error) {
	listTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[[]leaguedomain.Season, error], error) {
		seasons, err := s.listSeasons(ctx, db)
		if err != nil {
			return results.OperationResult[[]leaguedomain.Season, error]{}, err
		}
		return results.SuccessResult[[]leaguedomain.Season, error](seasons), nil
	}

	seasons, err := unwrap(withTelemetry(s, ctx, "ListSeasons", "", func(ctx context.Context) (results.OperationResult[[]leaguedomain.Season, error], error) {
		return runInTx(s, ctx, listTx)
	}))
	if err != nil {
		return nil, err
	}
	return *seasons, nil
}

func (s *LeagueService) listSeasons(ctx context.Context, db bun.IDB) ([]leaguedomain.Season, error) {
	pairs, err := s.repo.ListSeasonTeams(ctx, db)
	if err != nil {
		return nil, err
	}
	return groupSeasons(pairs), nil
}

// groupSeasons folds (season, team) pairs, already ordered by season, into seasons.
func groupSeasons(pairs []leaguedb.SeasonTeam) []leaguedomain.Season {
	seasons := []leaguedomain.Season{}
	for _, p := range pairs {
		if n := len(seasons); n == 0 || seasons[n-1].Year != p.Season {
			seasons = append(seasons, leaguedomain.Season{Year: p.Season, Teams: []string{}})
		}
		last := &seasons[len(seasons)-1]
		last.Teams = append(last.Teams, p.TeamName)
	}
	return seasons
}

// GetSeason returns the teams that shot in year.
func (s *LeagueService) GetSeason(ctx context.Context, year int) (*leaguedomain.Season, error) {
	getTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Season, error], error) {
		teams, err := s.repo.ListTeamsForSeason(ctx, db, year)
		if err != nil {
			return results.OperationResult[leaguedomain.Season, error]{}, err
		}
		if len(teams) == 0 {
			return results.FailureResult[leaguedomain.Season, error](fmt.Errorf("%w: %d", leaguedomain.ErrSeasonNotFound, year)), nil
		}
		season := leaguedomain.Season{Year: year, Teams: make([]string, 0, len(teams))}
		for _, t := range teams {
			season.Teams = append(season.Teams, t.Name)
		}
		return results.SuccessResult[leaguedomain.Season, error](season), nil
	}

	return unwrap(withTelemetry(s, ctx, "GetSeason", strconv.Itoa(year), func(ctx context.Context) (results.OperationResult[leaguedomain.Season, error], error) {
		return runInTx(s, ctx, getTx)
	}))
}

// Overview gathers teams, shooters and seasons for the administration page.
func (s *LeagueService) Overview(ctx context.Context) (*leaguedomain.Overview, error) {
	overviewTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Overview, error], error) {
		teams, err := s.repo.ListTeams(ctx, db)
		if err != nil {
			return results.OperationResult[leaguedomain.Overview, error]{}, err
		}
		shooters, err := s.repo.ListShooters(ctx, db)
		if err != nil {
			return results.OperationResult[leaguedomain.Overview, error]{}, err
		}
		seasons, err := s.listSeasons(ctx, db)
		if err != nil {
			return results.OperationResult[leaguedomain.Overview, error]{}, err
		}

		ov := leaguedomain.Overview{
			Teams:    toDomainTeams(teams),
			Shooters: make([]leaguedomain.Shooter, 0, len(shooters)),
			Seasons:  seasons,
		}
		for _, sh := range shooters {
			ov.Shooters = append(ov.Shooters, toDomainShooter(sh))
		}
		return results.SuccessResult[leaguedomain.Overview, error](ov), nil
	}

	return unwrap(withTelemetry(s, ctx, "Overview", "", func(ctx context.Context) (results.OperationResult[leaguedomain.Overview, error], error) {
		return runInTx(s, ctx, overviewTx)
	}))
}
