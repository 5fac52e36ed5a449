package leagueservice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	scoreevents "github.com/Black-And-White-Club/citl/app/events/score"
	leaguedomain "github.com/Black-And-White-Club/citl/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/citl/internal/metrics"
)

var fixedNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func newTestService(repo *FakeLeagueRepo, scores *FakeScoreWriter, pub *FakePublisher) *LeagueService {
	svc := NewLeagueService(
		repo,
		scores,
		pub,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestCreateTeam(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		setupRepo func(*FakeLeagueRepo)
		wantName  string
		wantErr   error
		wantTrace []string
	}{
		{
			name:      "creates trimmed name",
			input:     "  Rangers ",
			wantName:  "Rangers",
			wantTrace: []string{"TeamExists", "CreateTeam"},
		},
		{
			name:      "empty name",
			input:     "   ",
			wantErr:   leaguedomain.ErrTeamNameRequired,
			wantTrace: []string{},
		},
		{
			name:  "existing team",
			input: "Rangers",
			setupRepo: func(f *FakeLeagueRepo) {
				f.TeamExistsFunc = func(ctx context.Context, db bun.IDB, name string) (bool, error) {
					return true, nil
				}
			},
			wantErr:   leaguedomain.ErrTeamExists,
			wantTrace: []string{"TeamExists"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeLeagueRepo()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}

			team, err := newTestService(repo, &FakeScoreWriter{}, NewFakePublisher()).CreateTeam(context.Background(), tt.input)
			assert.Equal(t, tt.wantTrace, repo.Trace())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, team)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, team.Name)
			assert.NotEqual(t, uuid.Nil, team.ID)
		})
	}
}

func TestCreateTeam_RepoError(t *testing.T) {
	repo := NewFakeLeagueRepo()
	repo.CreateTeamFunc = func(ctx context.Context, db bun.IDB, team *leaguedb.Team) error {
		return errors.New("connection reset")
	}

	_, err := newTestService(repo, &FakeScoreWriter{}, NewFakePublisher()).CreateTeam(context.Background(), "Rangers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CreateTeam: connection reset")
}

func TestCreateTeams(t *testing.T) {
	repo := NewFakeLeagueRepo()
	repo.TeamExistsFunc = func(ctx context.Context, db bun.IDB, name string) (bool, error) {
		return strings.EqualFold(name, "Aces"), nil
	}

	res, err := newTestService(repo, &FakeScoreWriter{}, NewFakePublisher()).
		CreateTeams(context.Background(), []string{"Rangers", "", "aces", " rangers ", "Blazers"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Rangers", "Blazers"}, res.Created)
	assert.Equal(t, []leaguedomain.Skipped{
		{Name: "aces", Reason: "already exists"},
		{Name: "rangers", Reason: "duplicate in batch"},
	}, res.Skipped)
}

func TestRegisterShooter(t *testing.T) {
	team := &leaguedb.Team{ID: uuid.New(), Name: "Rangers"}
	withTeam := func(f *FakeLeagueRepo) {
		f.GetTeamByNameFunc = func(ctx context.Context, db bun.IDB, name string) (*leaguedb.Team, error) {
			if strings.EqualFold(name, team.Name) {
				return team, nil
			}
			return nil, leaguedb.ErrNotFound
		}
	}

	t.Run("saves shooter and onboarding score", func(t *testing.T) {
		repo := NewFakeLeagueRepo()
		withTeam(repo)
		scores := &FakeScoreWriter{}
		pub := NewFakePublisher()

		shooter, err := newTestService(repo, scores, pub).RegisterShooter(context.Background(), leaguedomain.ShooterRegistration{
			FirstName: " Jane ",
			LastName:  "Doe",
			Email:     "jane@example.com",
			TeamName:  "rangers",
			Rookie:    true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", shooter.Name())
		assert.True(t, shooter.Rookie)
		assert.Equal(t, 35.0, shooter.Average)

		require.Len(t, scores.Scores, 1)
		score := scores.Scores[0]
		assert.Equal(t, shooter.ID, score.ShooterID)
		assert.Equal(t, team.ID, score.TeamID)
		assert.Equal(t, 0, score.Week)
		assert.Equal(t, leaguedomain.OnboardingBunkerOne, *score.BunkerOne)
		assert.Equal(t, leaguedomain.OnboardingBunkerTwo, *score.BunkerTwo)
		assert.Equal(t, fixedNow, score.MatchDate)

		msgs := pub.Messages(scoreevents.ScoreRecordedV1)
		require.Len(t, msgs, 1)
		var payload scoreevents.ScoreRecordedPayloadV1
		require.NoError(t, json.Unmarshal(msgs[0].Payload, &payload))
		assert.Equal(t, scoreevents.ScoreRecordedPayloadV1{
			ShooterID: shooter.ID,
			TeamID:    team.ID,
			TeamName:  "Rangers",
			Season:    2026,
		}, payload)
	})

	failures := []struct {
		name    string
		reg     leaguedomain.ShooterRegistration
		setup   func(*FakeLeagueRepo)
		wantErr error
	}{
		{
			name:    "missing last name",
			reg:     leaguedomain.ShooterRegistration{FirstName: "Jane", TeamName: "Rangers"},
			wantErr: leaguedomain.ErrShooterNameRequired,
		},
		{
			name:    "missing team",
			reg:     leaguedomain.ShooterRegistration{FirstName: "Jane", LastName: "Doe"},
			wantErr: leaguedomain.ErrTeamNameRequired,
		},
		{
			name:    "unknown team",
			reg:     leaguedomain.ShooterRegistration{FirstName: "Jane", LastName: "Doe", TeamName: "Nobody"},
			wantErr: leaguedomain.ErrTeamNotFound,
		},
		{
			name: "already registered",
			reg:  leaguedomain.ShooterRegistration{FirstName: "Jane", LastName: "Doe", TeamName: "Rangers"},
			setup: func(f *FakeLeagueRepo) {
				f.ShooterExistsFunc = func(ctx context.Context, db bun.IDB, first, last, email string) (bool, error) {
					return true, nil
				}
			},
			wantErr: leaguedomain.ErrShooterExists,
		},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeLeagueRepo()
			withTeam(repo)
			if tt.setup != nil {
				tt.setup(repo)
			}
			scores := &FakeScoreWriter{}
			pub := NewFakePublisher()

			shooter, err := newTestService(repo, scores, pub).RegisterShooter(context.Background(), tt.reg)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, shooter)
			assert.Empty(t, scores.Scores)
			assert.Empty(t, pub.Messages(scoreevents.ScoreRecordedV1))
			assert.NotContains(t, repo.Trace(), "CreateShooter")
		})
	}
}

func TestRegisterShooters(t *testing.T) {
	team := &leaguedb.Team{ID: uuid.New(), Name: "Rangers"}
	repo := NewFakeLeagueRepo()
	repo.GetTeamByNameFunc = func(ctx context.Context, db bun.IDB, name string) (*leaguedb.Team, error) {
		if name == "Rangers" {
			return team, nil
		}
		return nil, leaguedb.ErrNotFound
	}
	repo.ShooterExistsFunc = func(ctx context.Context, db bun.IDB, first, last, email string) (bool, error) {
		return first == "Old" && last == "Timer", nil
	}
	scores := &FakeScoreWriter{}
	pub := NewFakePublisher()

	res, err := newTestService(repo, scores, pub).RegisterShooters(context.Background(), []leaguedomain.ShooterRegistration{
		{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", TeamName: "Rangers"},
		{FirstName: "JANE", LastName: "doe", Email: "JANE@example.com", TeamName: "Rangers"},
		{FirstName: "Old", LastName: "Timer", TeamName: "Rangers"},
		{FirstName: "Lost", LastName: "Soul", TeamName: "Nowhere"},
		{FirstName: "Adam", LastName: "Ant", TeamName: "Rangers"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Jane Doe", "Adam Ant"}, res.Created)
	require.Len(t, res.Skipped, 3)
	assert.Equal(t, leaguedomain.Skipped{Name: "JANE doe", Reason: "duplicate in batch"}, res.Skipped[0])
	assert.Equal(t, "Old Timer", res.Skipped[1].Name)
	assert.Contains(t, res.Skipped[1].Reason, leaguedomain.ErrShooterExists.Error())
	assert.Contains(t, res.Skipped[2].Reason, leaguedomain.ErrTeamNotFound.Error())

	assert.Len(t, scores.Scores, 2)
	assert.Len(t, pub.Messages(scoreevents.ScoreRecordedV1), 2)
}

func TestRegisterShooter_ScoreWriteFails(t *testing.T) {
	repo := NewFakeLeagueRepo()
	repo.GetTeamByNameFunc = func(ctx context.Context, db bun.IDB, name string) (*leaguedb.Team, error) {
		return &leaguedb.Team{ID: uuid.New(), Name: name}, nil
	}
	pub := NewFakePublisher()

	_, err := newTestService(repo, &FakeScoreWriter{Err: errors.New("fk violation")}, pub).
		RegisterShooter(context.Background(), leaguedomain.ShooterRegistration{FirstName: "A", LastName: "B", TeamName: "Rangers"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RegisterShooter")
	assert.Empty(t, pub.Messages(scoreevents.ScoreRecordedV1))
}

func TestListSeasons(t *testing.T) {
	repo := NewFakeLeagueRepo()
	repo.ListSeasonTeamsFunc = func(ctx context.Context, db bun.IDB) ([]leaguedb.SeasonTeam, error) {
		return []leaguedb.SeasonTeam{
			{Season: 2026, TeamName: "Aces"},
			{Season: 2026, TeamName: "Rangers"},
			{Season: 2025, TeamName: "Rangers"},
		}, nil
	}

	seasons, err := newTestService(repo, &FakeScoreWriter{}, NewFakePublisher()).ListSeasons(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []leaguedomain.Season{
		{Year: 2026, Teams: []string{"Aces", "Rangers"}},
		{Year: 2025, Teams: []string{"Rangers"}},
	}, seasons)
}

func TestListSeasons_Empty(t *testing.T) {
	seasons, err := newTestService(NewFakeLeagueRepo(), &FakeScoreWriter{}, NewFakePublisher()).ListSeasons(context.Background())
	require.NoError(t, err)
	assert.Empty(t, seasons)
	assert.NotNil(t, seasons)
}

func TestGetSeason(t *testing.T) {
	repo := NewFakeLeagueRepo()
	repo.ListTeamsForSeasonFunc = func(ctx context.Context, db bun.IDB, season int) ([]leaguedb.Team, error) {
		if season == 2026 {
			return []leaguedb.Team{{Name: "Aces"}, {Name: "Rangers"}}, nil
		}
		return nil, nil
	}
	svc := newTestService(repo, &FakeScoreWriter{}, NewFakePublisher())

	season, err := svc.GetSeason(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, &leaguedomain.Season{Year: 2026, Teams: []string{"Aces", "Rangers"}}, season)

	_, err = svc.GetSeason(context.Background(), 1999)
	assert.ErrorIs(t, err, leaguedomain.ErrSeasonNotFound)
}

func TestOverview(t *testing.T) {
	repo := NewFakeLeagueRepo()
	repo.ListTeamsFunc = func(ctx context.Context, db bun.IDB) ([]leaguedb.Team, error) {
		return []leaguedb.Team{{Name: "Rangers"}}, nil
	}
	repo.ListShootersFunc = func(ctx context.Context, db bun.IDB) ([]leaguedb.Shooter, error) {
		return []leaguedb.Shooter{{FirstName: "Jane", LastName: "Doe", Average: 41.5}}, nil
	}
	repo.ListSeasonTeamsFunc = func(ctx context.Context, db bun.IDB) ([]leaguedb.SeasonTeam, error) {
		return []leaguedb.SeasonTeam{{Season: 2026, TeamName: "Rangers"}}, nil
	}

	ov, err := newTestService(repo, &FakeScoreWriter{}, NewFakePublisher()).Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, ov.Teams, 1)
	require.Len(t, ov.Shooters, 1)
	assert.Equal(t, 41.5, ov.Shooters[0].Average)
	assert.Equal(t, []leaguedomain.Season{{Year: 2026, Teams: []string{"Rangers"}}}, ov.Seasons)
	assert.Equal(t, []string{"ListTeams", "ListShooters", "ListSeasonTeams"}, repo.Trace())
}
