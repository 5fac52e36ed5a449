package leagueservice

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
// Fake League Repo
// ------------------------

// FakeLeagueRepo provides a programmable stub for leaguedb.Repository.
type FakeLeagueRepo struct {
	trace []string

	CreateTeamFunc           func(ctx context.Context, db bun.IDB, team *leaguedb.Team) error
	GetTeamFunc              func(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Team, error)
	GetTeamByNameFunc        func(ctx context.Context, db bun.IDB, name string) (*leaguedb.Team, error)
	TeamExistsFunc           func(ctx context.Context, db bun.IDB, name string) (bool, error)
	ListTeamsFunc            func(ctx context.Context, db bun.IDB) ([]leaguedb.Team, error)
	CreateShooterFunc        func(ctx context.Context, db bun.IDB, shooter *leaguedb.Shooter) error
	GetShooterFunc           func(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Shooter, error)
	ShooterExistsFunc        func(ctx context.Context, db bun.IDB, first, last, email string) (bool, error)
	ListShootersFunc         func(ctx context.Context, db bun.IDB) ([]leaguedb.Shooter, error)
	UpdateShooterAverageFunc func(ctx context.Context, db bun.IDB, id uuid.UUID, average float64) error
	ListSeasonTeamsFunc      func(ctx context.Context, db bun.IDB) ([]leaguedb.SeasonTeam, error)
	ListTeamsForSeasonFunc   func(ctx context.Context, db bun.IDB, season int) ([]leaguedb.Team, error)
}

func NewFakeLeagueRepo() *FakeLeagueRepo {
	return &FakeLeagueRepo{trace: []string{}}
}

func (f *FakeLeagueRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeLeagueRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeLeagueRepo) CreateTeam(ctx context.Context, db bun.IDB, team *leaguedb.Team) error {
	f.record("CreateTeam")
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	if f.CreateTeamFunc != nil {
		return f.CreateTeamFunc(ctx, db, team)
	}
	return nil
}

func (f *FakeLeagueRepo) GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Team, error) {
	f.record("GetTeam")
	if f.GetTeamFunc != nil {
		return f.GetTeamFunc(ctx, db, id)
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueRepo) GetTeamByName(ctx context.Context, db bun.IDB, name string) (*leaguedb.Team, error) {
	f.record("GetTeamByName")
	if f.GetTeamByNameFunc != nil {
		return f.GetTeamByNameFunc(ctx, db, name)
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueRepo) TeamExists(ctx context.Context, db bun.IDB, name string) (bool, error) {
	f.record("TeamExists")
	if f.TeamExistsFunc != nil {
		return f.TeamExistsFunc(ctx, db, name)
	}
	return false, nil
}

func (f *FakeLeagueRepo) ListTeams(ctx context.Context, db bun.IDB) ([]leaguedb.Team, error) {
	f.record("ListTeams")
	if f.ListTeamsFunc != nil {
		return f.ListTeamsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeLeagueRepo) CreateShooter(ctx context.Context, db bun.IDB, shooter *leaguedb.Shooter) error {
	f.record("CreateShooter")
	if shooter.ID == uuid.Nil {
		shooter.ID = uuid.New()
	}
	if f.CreateShooterFunc != nil {
		return f.CreateShooterFunc(ctx, db, shooter)
	}
	return nil
}

func (f *FakeLeagueRepo) GetShooter(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Shooter, error) {
	f.record("GetShooter")
	if f.GetShooterFunc != nil {
		return f.GetShooterFunc(ctx, db, id)
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueRepo) ShooterExists(ctx context.Context, db bun.IDB, first, last, email string) (bool, error) {
	f.record("ShooterExists")
	if f.ShooterExistsFunc != nil {
		return f.ShooterExistsFunc(ctx, db, first, last, email)
	}
	return false, nil
}

func (f *FakeLeagueRepo) ListShooters(ctx context.Context, db bun.IDB) ([]leaguedb.Shooter, error) {
	f.record("ListShooters")
	if f.ListShootersFunc != nil {
		return f.ListShootersFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeLeagueRepo) UpdateShooterAverage(ctx context.Context, db bun.IDB, id uuid.UUID, average float64) error {
	f.record("UpdateShooterAverage")
	if f.UpdateShooterAverageFunc != nil {
		return f.UpdateShooterAverageFunc(ctx, db, id, average)
	}
	return nil
}

func (f *FakeLeagueRepo) ListSeasonTeams(ctx context.Context, db bun.IDB) ([]leaguedb.SeasonTeam, error) {
	f.record("ListSeasonTeams")
	if f.ListSeasonTeamsFunc != nil {
		return f.ListSeasonTeamsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeLeagueRepo) ListTeamsForSeason(ctx context.Context, db bun.IDB, season int) ([]leaguedb.Team, error) {
	f.record("ListTeamsForSeason")
	if f.ListTeamsForSeasonFunc != nil {
		return f.ListTeamsForSeasonFunc(ctx, db, season)
	}
	return nil, nil
}

// ------------------------
// Fake Score Writer
// ------------------------

type FakeScoreWriter struct {
	Scores []*scoredb.Score
	Err    error
}

func (f *FakeScoreWriter) Create(_ context.Context, _ bun.IDB, score *scoredb.Score) error {
	if f.Err != nil {
		return f.Err
	}
	f.Scores = append(f.Scores, score)
	return nil
}

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu       sync.Mutex
	messages map[string][]*message.Message
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{messages: map[string][]*message.Message{}}
}

func (f *FakePublisher) Publish(topic string, msgs ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[topic] = append(f.messages[topic], msgs...)
	return nil
}

func (f *FakePublisher) Messages(topic string) []*message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[topic]
}
