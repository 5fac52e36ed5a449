package scoreservice

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
)

// ------------------------
// Fake Score Repo
// ------------------------

// FakeScoreRepo provides a programmable stub for scoredb.Repository.
type FakeScoreRepo struct {
	trace   []string
	created []*scoredb.Score

	CreateFunc                func(ctx context.Context, db bun.IDB, score *scoredb.Score) error
	ExistsFunc                func(ctx context.Context, db bun.IDB, shooterID uuid.UUID, season, week int) (bool, error)
	ListScorecardRowsFunc     func(ctx context.Context, db bun.IDB, teamName string, season int) ([]scoredb.ScorecardRow, error)
	ListShooterSeasonRowsFunc func(ctx context.Context, db bun.IDB, shooterID uuid.UUID, season int) ([]scoredb.ScorecardRow, error)
	ListTeamShootersFunc      func(ctx context.Context, db bun.IDB, teamName string, season int) ([]scoredb.RosterEntry, error)
}

func NewFakeScoreRepo() *FakeScoreRepo {
	return &FakeScoreRepo{trace: []string{}}
}

func (f *FakeScoreRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeScoreRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Created returns every score passed to Create that it accepted.
func (f *FakeScoreRepo) Created() []*scoredb.Score {
	return f.created
}

func (f *FakeScoreRepo) Create(ctx context.Context, db bun.IDB, score *scoredb.Score) error {
	f.record("Create")
	if f.CreateFunc != nil {
		if err := f.CreateFunc(ctx, db, score); err != nil {
			return err
		}
	}
	score.Season = score.MatchDate.Year()
	f.created = append(f.created, score)
	return nil
}

func (f *FakeScoreRepo) Exists(ctx context.Context, db bun.IDB, shooterID uuid.UUID, season, week int) (bool, error) {
	f.record("Exists")
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, db, shooterID, season, week)
	}
	return false, nil
}

func (f *FakeScoreRepo) ListScorecardRows(ctx context.Context, db bun.IDB, teamName string, season int) ([]scoredb.ScorecardRow, error) {
	f.record("ListScorecardRows")
	if f.ListScorecardRowsFunc != nil {
		return f.ListScorecardRowsFunc(ctx, db, teamName, season)
	}
	return nil, nil
}

func (f *FakeScoreRepo) ListShooterSeasonRows(ctx context.Context, db bun.IDB, shooterID uuid.UUID, season int) ([]scoredb.ScorecardRow, error) {
	f.record("ListShooterSeasonRows")
	if f.ListShooterSeasonRowsFunc != nil {
		return f.ListShooterSeasonRowsFunc(ctx, db, shooterID, season)
	}
	return nil, nil
}

func (f *FakeScoreRepo) ListTeamShooters(ctx context.Context, db bun.IDB, teamName string, season int) ([]scoredb.RosterEntry, error) {
	f.record("ListTeamShooters")
	if f.ListTeamShootersFunc != nil {
		return f.ListTeamShootersFunc(ctx, db, teamName, season)
	}
	return nil, nil
}

// ------------------------
// Fake Roster
// ------------------------

// FakeRoster serves teams and shooters from maps.
type FakeRoster struct {
	Teams    map[string]*leaguedb.Team
	Shooters map[uuid.UUID]*leaguedb.Shooter
	Err      error
}

func NewFakeRoster() *FakeRoster {
	return &FakeRoster{
		Teams:    map[string]*leaguedb.Team{},
		Shooters: map[uuid.UUID]*leaguedb.Shooter{},
	}
}

func (f *FakeRoster) GetTeamByName(_ context.Context, _ bun.IDB, name string) (*leaguedb.Team, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	t, ok := f.Teams[name]
	if !ok {
		return nil, leaguedb.ErrNotFound
	}
	return t, nil
}

func (f *FakeRoster) GetShooter(_ context.Context, _ bun.IDB, id uuid.UUID) (*leaguedb.Shooter, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	s, ok := f.Shooters[id]
	if !ok {
		return nil, leaguedb.ErrNotFound
	}
	return s, nil
}

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu       sync.Mutex
	messages map[string][]*message.Message
	Err      error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{messages: map[string][]*message.Message{}}
}

func (f *FakePublisher) Publish(topic string, msgs ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.messages[topic] = append(f.messages[topic], msgs...)
	return nil
}

func (f *FakePublisher) Messages(topic string) []*message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[topic]
}
