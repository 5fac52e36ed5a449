package web

import (
	"context"
	"time"

	scoreevents "github.com/Black-And-White-Club/citl/app/events/score"
	leaguedomain "github.com/Black-And-White-Club/citl/app/modules/league/domain"
	scoredomain "github.com/Black-And-White-Club/citl/app/modules/score/domain"
	scorecarddomain "github.com/Black-And-White-Club/citl/app/modules/scorecard/domain"
)

// ------------------------
// Fake League Service
// ------------------------

type FakeLeagueService struct {
	CreateTeamFunc       func(ctx context.Context, name string) (*leaguedomain.Team, error)
	CreateTeamsFunc      func(ctx context.Context, names []string) (*leaguedomain.BulkResult, error)
	RegisterShooterFunc  func(ctx context.Context, reg leaguedomain.ShooterRegistration) (*leaguedomain.Shooter, error)
	RegisterShootersFunc func(ctx context.Context, regs []leaguedomain.ShooterRegistration) (*leaguedomain.BulkResult, error)
	ListTeamsFunc        func(ctx context.Context) ([]leaguedomain.Team, error)
	ListSeasonsFunc      func(ctx context.Context) ([]leaguedomain.Season, error)
	GetSeasonFunc        func(ctx context.Context, year int) (*leaguedomain.Season, error)
	OverviewFunc         func(ctx context.Context) (*leaguedomain.Overview, error)
}

func (f *FakeLeagueService) CreateTeam(ctx context.Context, name string) (*leaguedomain.Team, error) {
	if f.CreateTeamFunc != nil {
		return f.CreateTeamFunc(ctx, name)
	}
	return &leaguedomain.Team{Name: name}, nil
}

func (f *FakeLeagueService) CreateTeams(ctx context.Context, names []string) (*leaguedomain.BulkResult, error) {
	if f.CreateTeamsFunc != nil {
		return f.CreateTeamsFunc(ctx, names)
	}
	return &leaguedomain.BulkResult{Created: names}, nil
}

func (f *FakeLeagueService) RegisterShooter(ctx context.Context, reg leaguedomain.ShooterRegistration) (*leaguedomain.Shooter, error) {
	if f.RegisterShooterFunc != nil {
		return f.RegisterShooterFunc(ctx, reg)
	}
	return &leaguedomain.Shooter{FirstName: reg.FirstName, LastName: reg.LastName, Average: 35}, nil
}

func (f *FakeLeagueService) RegisterShooters(ctx context.Context, regs []leaguedomain.ShooterRegistration) (*leaguedomain.BulkResult, error) {
	if f.RegisterShootersFunc != nil {
		return f.RegisterShootersFunc(ctx, regs)
	}
	return &leaguedomain.BulkResult{}, nil
}

func (f *FakeLeagueService) ListTeams(ctx context.Context) ([]leaguedomain.Team, error) {
	if f.ListTeamsFunc != nil {
		return f.ListTeamsFunc(ctx)
	}
	return []leaguedomain.Team{}, nil
}

func (f *FakeLeagueService) ListSeasons(ctx context.Context) ([]leaguedomain.Season, error) {
	if f.ListSeasonsFunc != nil {
		return f.ListSeasonsFunc(ctx)
	}
	return []leaguedomain.Season{}, nil
}

func (f *FakeLeagueService) GetSeason(ctx context.Context, year int) (*leaguedomain.Season, error) {
	if f.GetSeasonFunc != nil {
		return f.GetSeasonFunc(ctx, year)
	}
	return nil, leaguedomain.ErrSeasonNotFound
}

func (f *FakeLeagueService) Overview(ctx context.Context) (*leaguedomain.Overview, error) {
	if f.OverviewFunc != nil {
		return f.OverviewFunc(ctx)
	}
	return &leaguedomain.Overview{}, nil
}

// ------------------------
// Fake Score Service
// ------------------------

type FakeScoreService struct {
	RecordWeeklyScoresFunc func(ctx context.Context, req scoredomain.WeeklyScoresRequest) (*scoredomain.RecordResult, error)
	EntrySheetFunc         func(ctx context.Context, teamName string, season int) (*scoredomain.EntrySheet, error)
	ImportScoresFunc       func(ctx context.Context, teamName, filename string, data []byte, fallbackDate time.Time) (*scoredomain.RecordResult, error)
}

func (f *FakeScoreService) RecordWeeklyScores(ctx context.Context, req scoredomain.WeeklyScoresRequest) (*scoredomain.RecordResult, error) {
	if f.RecordWeeklyScoresFunc != nil {
		return f.RecordWeeklyScoresFunc(ctx, req)
	}
	return &scoredomain.RecordResult{}, nil
}

func (f *FakeScoreService) EntrySheet(ctx context.Context, teamName string, season int) (*scoredomain.EntrySheet, error) {
	if f.EntrySheetFunc != nil {
		return f.EntrySheetFunc(ctx, teamName, season)
	}
	return &scoredomain.EntrySheet{Team: teamName, Season: season}, nil
}

func (f *FakeScoreService) ImportScores(ctx context.Context, teamName, filename string, data []byte, fallbackDate time.Time) (*scoredomain.RecordResult, error) {
	if f.ImportScoresFunc != nil {
		return f.ImportScoresFunc(ctx, teamName, filename, data, fallbackDate)
	}
	return &scoredomain.RecordResult{}, nil
}

// ------------------------
// Fake Scorecard Service
// ------------------------

type FakeScorecardService struct {
	GetScorecardFunc func(ctx context.Context, season int, team string, opts scorecarddomain.Options) (*scorecarddomain.View, error)
	ExportXLSXFunc   func(ctx context.Context, season int, team string, opts scorecarddomain.Options) ([]byte, error)
	RenderChartFunc  func(ctx context.Context, season int, team string, opts scorecarddomain.Options) ([]byte, error)
}

func (f *FakeScorecardService) Options(variant, keyMode string) (scorecarddomain.Options, error) {
	v, err := scorecarddomain.ParseVariant(variant)
	if err != nil {
		return scorecarddomain.Options{}, err
	}
	k, err := scorecarddomain.ParseKeyMode(keyMode)
	if err != nil {
		return scorecarddomain.Options{}, err
	}
	return scorecarddomain.Options{Variant: v, KeyMode: k}, nil
}

func (f *FakeScorecardService) GetScorecard(ctx context.Context, season int, team string, opts scorecarddomain.Options) (*scorecarddomain.View, error) {
	if f.GetScorecardFunc != nil {
		return f.GetScorecardFunc(ctx, season, team, opts)
	}
	return nil, scorecarddomain.ErrScorecardNotFound
}

func (f *FakeScorecardService) ExportXLSX(ctx context.Context, season int, team string, opts scorecarddomain.Options) ([]byte, error) {
	if f.ExportXLSXFunc != nil {
		return f.ExportXLSXFunc(ctx, season, team, opts)
	}
	return nil, scorecarddomain.ErrScorecardNotFound
}

func (f *FakeScorecardService) RenderChart(ctx context.Context, season int, team string, opts scorecarddomain.Options) ([]byte, error) {
	if f.RenderChartFunc != nil {
		return f.RenderChartFunc(ctx, season, team, opts)
	}
	return nil, scorecarddomain.ErrScorecardNotFound
}

func (f *FakeScorecardService) RefreshShooterAverage(context.Context, *scoreevents.ScoreRecordedPayloadV1) error {
	return nil
}
