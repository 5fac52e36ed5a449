package leagueservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	leaguedomain "github.com/Black-And-White-Club/citl/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/citl/internal/results"
)

// CreateTeam adds a team. Names are unique regardless of case.
func (s *LeagueService) CreateTeam(ctx context.Context, name string) (*leaguedomain.Team, error) {
	name = strings.TrimSpace(name)

	createTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Team, error], error) {
		return s.createTeamLogic(ctx, db, name)
	}

	return unwrap(withTelemetry(s, ctx, "CreateTeam", name, func(ctx context.Context) (results.OperationResult[leaguedomain.Team, error], error) {
		return runInTx(s, ctx, createTx)
	}))
}

func (s *LeagueService) createTeamLogic(ctx context.Context, db bun.IDB, name string) (results.OperationResult[leaguedomain.Team, error], error) {
	if name == "" {
		return results.FailureResult[leaguedomain.Team, error](leaguedomain.ErrTeamNameRequired), nil
	}

	exists, err := s.repo.TeamExists(ctx, db, name)
	if err != nil {
		return results.OperationResult[leaguedomain.Team, error]{}, err
	}
	if exists {
		return results.FailureResult[leaguedomain.Team, error](fmt.Errorf("%w: %s", leaguedomain.ErrTeamExists, name)), nil
	}

	team := &leaguedb.Team{Name: name}
	if err := s.repo.CreateTeam(ctx, db, team); err != nil {
		return results.OperationResult[leaguedomain.Team, error]{}, err
	}
	return results.SuccessResult[leaguedomain.Team, error](toDomainTeam(*team)), nil
}

// CreateTeams adds every new name. Blank lines are ignored; names repeated
// in the batch or already stored are reported as skipped.
func (s *LeagueService) CreateTeams(ctx context.Context, names []string) (*leaguedomain.BulkResult, error) {
	bulkTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.BulkResult, error], error) {
		return s.createTeamsLogic(ctx, db, names)
	}

	return unwrap(withTelemetry(s, ctx, "CreateTeams", fmt.Sprintf("%d teams", len(names)), func(ctx context.Context) (results.OperationResult[leaguedomain.BulkResult, error], error) {
		return runInTx(s, ctx, bulkTx)
	}))
}

func (s *LeagueService) createTeamsLogic(ctx context.Context, db bun.IDB, names []string) (results.OperationResult[leaguedomain.BulkResult, error], error) {
	out := leaguedomain.BulkResult{Created: []string{}, Skipped: []leaguedomain.Skipped{}}
	seen := make(map[string]bool, len(names))

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			out.Skipped = append(out.Skipped, leaguedomain.Skipped{Name: name, Reason: "duplicate in batch"})
			continue
		}
		seen[key] = true

		exists, err := s.repo.TeamExists(ctx, db, name)
		if err != nil {
			return results.OperationResult[leaguedomain.BulkResult, error]{}, err
		}
		if exists {
			out.Skipped = append(out.Skipped, leaguedomain.Skipped{Name: name, Reason: "already exists"})
			continue
		}

		if err := s.repo.CreateTeam(ctx, db, &leaguedb.Team{Name: name}); err != nil {
			return results.OperationResult[leaguedomain.BulkResult, error]{}, err
		}
		out.Created = append(out.Created, name)
	}
	return results.SuccessResult[leaguedomain.BulkResult, error](out), nil
}

// ListTeams returns every team by name.
func (s *LeagueService) ListTeams(ctx context.Context) ([]leaguedomain.Team, error) {
	listTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[[]leaguedomain.Team, error], error) {
		teams, err := s.repo.ListTeams(ctx, db)
		if err != nil {
			return results.OperationResult[[]leaguedomain.Team, error]{}, err
		}
		return results.SuccessResult[[]leaguedomain.Team, error](toDomainTeams(teams)), nil
	}

	teams, err := unwrap(withTelemetry(s, ctx, "ListTeams", "", func(ctx context.Context) (results.OperationResult[[]leaguedomain.Team, error], error) {
		return runInTx(s, ctx, listTx)
	}))
	if err != nil {
		return nil, err
	}
	return *teams, nil
}

func toDomainTeam(t leaguedb.Team) leaguedomain.Team {
	return leaguedomain.Team{ID: t.ID, Name: t.Name}
}

func toDomainTeams(teams []leaguedb.Team) []leaguedomain.Team {
	out := make([]leaguedomain.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, toDomainTeam(t))
	}
	return out
}
