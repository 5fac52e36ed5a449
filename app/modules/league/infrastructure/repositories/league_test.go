package leaguedb_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/citl/internal/testutils"
)

func TestTeams(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewSQLiteDB(t)
	repo := leaguedb.NewRepository(db)

	rangers := &leaguedb.Team{Name: "Rangers"}
	require.NoError(t, repo.CreateTeam(ctx, nil, rangers))
	assert.NotEqual(t, uuid.Nil, rangers.ID)
	require.NoError(t, repo.CreateTeam(ctx, nil, &leaguedb.Team{Name: "Aces"}))

	got, err := repo.GetTeamByName(ctx, nil, "rangers")
	require.NoError(t, err)
	assert.Equal(t, rangers.ID, got.ID)

	byID, err := repo.GetTeam(ctx, nil, rangers.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rangers", byID.Name)

	exists, err := repo.TeamExists(ctx, nil, "RANGERS")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.TeamExists(ctx, nil, "Nobody")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetTeamByName(ctx, nil, "Nobody")
	assert.ErrorIs(t, err, leaguedb.ErrNotFound)

	teams, err := repo.ListTeams(ctx, nil)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Aces", teams[0].Name)

	// names are unique
	assert.Error(t, repo.CreateTeam(ctx, nil, &leaguedb.Team{Name: "Rangers"}))
}

func TestShooters(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewSQLiteDB(t)
	repo := leaguedb.NewRepository(db)
	gen := testutils.NewTestDataGenerator(3)

	for _, s := range gen.GenerateShooters(3) {
		require.NoError(t, repo.CreateShooter(ctx, nil, &leaguedb.Shooter{
			ID:        s.ID,
			FirstName: s.FirstName,
			LastName:  s.LastName,
			Email:     s.Email,
			Rookie:    s.Rookie,
		}))
	}
	jane := &leaguedb.Shooter{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	require.NoError(t, repo.CreateShooter(ctx, nil, jane))

	exists, err := repo.ShooterExists(ctx, nil, "jane", "DOE", "Jane@Example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ShooterExists(ctx, nil, "Jane", "Doe", "other@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.UpdateShooterAverage(ctx, nil, jane.ID, 41.5))
	got, err := repo.GetShooter(ctx, nil, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, 41.5, got.Average)

	assert.ErrorIs(t, repo.UpdateShooterAverage(ctx, nil, uuid.New(), 1), leaguedb.ErrNotFound)
	_, err = repo.GetShooter(ctx, nil, uuid.New())
	assert.ErrorIs(t, err, leaguedb.ErrNotFound)

	all, err := repo.ListShooters(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].LastName, all[i].LastName)
	}
}

func TestSeasonQueries(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewSQLiteDB(t)
	repo := leaguedb.NewRepository(db)
	scores := scoredb.NewRepository(db)

	aces := &leaguedb.Team{Name: "Aces"}
	rangers := &leaguedb.Team{Name: "Rangers"}
	require.NoError(t, repo.CreateTeam(ctx, nil, aces))
	require.NoError(t, repo.CreateTeam(ctx, nil, rangers))
	require.NoError(t, repo.CreateTeam(ctx, nil, &leaguedb.Team{Name: "Idle"}))

	shooter := &leaguedb.Shooter{FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, repo.CreateShooter(ctx, nil, shooter))

	add := func(team *leaguedb.Team, date time.Time, week int) {
		b1, b2 := 10, 12
		require.NoError(t, scores.Create(ctx, nil, &scoredb.Score{
			ShooterID: shooter.ID,
			TeamID:    team.ID,
			MatchDate: date,
			Week:      week,
			BunkerOne: &b1,
			BunkerTwo: &b2,
		}))
	}
	add(aces, time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC), 1)
	add(aces, time.Date(2023, 5, 9, 0, 0, 0, 0, time.UTC), 2)
	add(rangers, time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC), 1)
	add(aces, time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC), 2)

	pairs, err := repo.ListSeasonTeams(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []leaguedb.SeasonTeam{
		{Season: 2024, TeamName: "Aces"},
		{Season: 2024, TeamName: "Rangers"},
		{Season: 2023, TeamName: "Aces"},
	}, pairs)

	teams, err := repo.ListTeamsForSeason(ctx, nil, 2023)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Aces", teams[0].Name)

	teams, err = repo.ListTeamsForSeason(ctx, nil, 1999)
	require.NoError(t, err)
	assert.Empty(t, teams)
}
