package leagueservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	scoreevents "github.com/Black-And-White-Club/citl/app/events/score"
	leaguedomain "github.com/Black-And-White-Club/citl/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/citl/internal/results"
)

type registration struct {
	shooter leaguedomain.Shooter
	event   scoreevents.ScoreRecordedPayloadV1
}

type bulkRegistration struct {
	result leaguedomain.BulkResult
	events []scoreevents.ScoreRecordedPayloadV1
}

// RegisterShooter adds a shooter to a team and writes their week-0
// onboarding score in the season of reg.MatchDate (today when zero).
func (s *LeagueService) RegisterShooter(ctx context.Context, reg leaguedomain.ShooterRegistration) (*leaguedomain.Shooter, error) {
	reg = s.prepare(reg)

	registerTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[registration, error], error) {
		return s.registerLogic(ctx, db, reg)
	}

	result, err := withTelemetry(s, ctx, "RegisterShooter", reg.TeamName, func(ctx context.Context) (results.OperationResult[registration, error], error) {
		return runInTx(s, ctx, registerTx)
	})
	done, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}

	s.publishRecorded(ctx, []scoreevents.ScoreRecordedPayloadV1{done.event})
	return &done.shooter, nil
}

// RegisterShooters registers every shooter it can in one transaction.
// Duplicates by (first, last, email) within the batch or against stored
// shooters are skipped, as are rows with a missing name or unknown team.
func (s *LeagueService) RegisterShooters(ctx context.Context, regs []leaguedomain.ShooterRegistration) (*leaguedomain.BulkResult, error) {
	bulkTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[bulkRegistration, error], error) {
		out := bulkRegistration{result: leaguedomain.BulkResult{Created: []string{}, Skipped: []leaguedomain.Skipped{}}}
		seen := make(map[string]bool, len(regs))

		for _, raw := range regs {
			reg := s.prepare(raw)
			name := reg.FirstName + " " + reg.LastName

			key := reg.IdentityKey()
			if seen[key] {
				out.result.Skipped = append(out.result.Skipped, leaguedomain.Skipped{Name: name, Reason: "duplicate in batch"})
				continue
			}
			seen[key] = true

			res, err := s.registerLogic(ctx, db, reg)
			if err != nil {
				return results.OperationResult[bulkRegistration, error]{}, err
			}
			if res.IsFailure() {
				out.result.Skipped = append(out.result.Skipped, leaguedomain.Skipped{Name: name, Reason: (*res.Failure).Error()})
				continue
			}
			out.result.Created = append(out.result.Created, name)
			out.events = append(out.events, res.Success.event)
		}
		return results.SuccessResult[bulkRegistration, error](out), nil
	}

	result, err := withTelemetry(s, ctx, "RegisterShooters", fmt.Sprintf("%d shooters", len(regs)), func(ctx context.Context) (results.OperationResult[bulkRegistration, error], error) {
		return runInTx(s, ctx, bulkTx)
	})
	done, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}

	s.publishRecorded(ctx, done.events)
	return &done.result, nil
}

func (s *LeagueService) prepare(reg leaguedomain.ShooterRegistration) leaguedomain.ShooterRegistration {
	reg = reg.Normalize()
	if reg.MatchDate.IsZero() {
		reg.MatchDate = s.now()
	}
	return reg
}

func (s *LeagueService) registerLogic(ctx context.Context, db bun.IDB, reg leaguedomain.ShooterRegistration) (results.OperationResult[registration, error], error) {
	if reg.FirstName == "" || reg.LastName == "" {
		return results.FailureResult[registration, error](leaguedomain.ErrShooterNameRequired), nil
	}
	if reg.TeamName == "" {
		return results.FailureResult[registration, error](leaguedomain.ErrTeamNameRequired), nil
	}

	team, err := s.repo.GetTeamByName(ctx, db, reg.TeamName)
	if errors.Is(err, leaguedb.ErrNotFound) {
		return results.FailureResult[registration, error](fmt.Errorf("%w: %s", leaguedomain.ErrTeamNotFound, reg.TeamName)), nil
	}
	if err != nil {
		return results.OperationResult[registration, error]{}, fmt.Errorf("failed to get team: %w", err)
	}

	exists, err := s.repo.ShooterExists(ctx, db, reg.FirstName, reg.LastName, reg.Email)
	if err != nil {
		return results.OperationResult[registration, error]{}, err
	}
	if exists {
		return results.FailureResult[registration, error](fmt.Errorf("%w: %s %s", leaguedomain.ErrShooterExists, reg.FirstName, reg.LastName)), nil
	}

	shooter := &leaguedb.Shooter{
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		Rookie:    reg.Rookie,
		Guest:     reg.Guest,
		Captain:   reg.Captain,
		Average:   float64(leaguedomain.OnboardingBunkerOne + leaguedomain.OnboardingBunkerTwo),
	}
	if err := s.repo.CreateShooter(ctx, db, shooter); err != nil {
		return results.OperationResult[registration, error]{}, err
	}

	b1, b2 := leaguedomain.OnboardingBunkerOne, leaguedomain.OnboardingBunkerTwo
	score := &scoredb.Score{
		ShooterID: shooter.ID,
		TeamID:    team.ID,
		MatchDate: reg.MatchDate,
		Week:      0,
		BunkerOne: &b1,
		BunkerTwo: &b2,
	}
	if err := s.scores.Create(ctx, db, score); err != nil {
		return results.OperationResult[registration, error]{}, err
	}

	return results.SuccessResult[registration, error](registration{
		shooter: toDomainShooter(*shooter),
		event: scoreevents.ScoreRecordedPayloadV1{
			ShooterID: shooter.ID,
			TeamID:    team.ID,
			TeamName:  team.Name,
			Season:    reg.MatchDate.Year(),
			Week:      0,
		},
	}), nil
}

func toDomainShooter(s leaguedb.Shooter) leaguedomain.Shooter {
	return leaguedomain.Shooter{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Rookie:    s.Rookie,
		Guest:     s.Guest,
		Captain:   s.Captain,
		Average:   s.Average,
	}
}
