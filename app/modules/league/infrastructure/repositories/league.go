package leaguedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new league repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateTeam(ctx context.Context, db bun.IDB, team *Team) error {
	db = r.resolveDB(db)
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(team).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *Impl) GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*Team, error) {
	db = r.resolveDB(db)
	team := new(Team)
	err := db.NewSelect().Model(team).Where("t.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

func (r *Impl) GetTeamByName(ctx context.Context, db bun.IDB, name string) (*Team, error) {
	db = r.resolveDB(db)
	team := new(Team)
	err := db.NewSelect().Model(team).Where("LOWER(t.name) = LOWER(?)", name).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team by name: %w", err)
	}
	return team, nil
}

func (r *Impl) TeamExists(ctx context.Context, db bun.IDB, name string) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().Model((*Team)(nil)).Where("LOWER(t.name) = LOWER(?)", name).Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check team: %w", err)
	}
	return exists, nil
}

func (r *Impl) ListTeams(ctx context.Context, db bun.IDB) ([]Team, error) {
	db = r.resolveDB(db)
	var teams []Team
	if err := db.NewSelect().Model(&teams).OrderExpr("t.name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (r *Impl) CreateShooter(ctx context.Context, db bun.IDB, shooter *Shooter) error {
	db = r.resolveDB(db)
	if shooter.ID == uuid.Nil {
		shooter.ID = uuid.New()
	}
	if shooter.CreatedAt.IsZero() {
		shooter.CreatedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(shooter).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create shooter: %w", err)
	}
	return nil
}

func (r *Impl) GetShooter(ctx context.Context, db bun.IDB, id uuid.UUID) (*Shooter, error) {
	db = r.resolveDB(db)
	shooter := new(Shooter)
	err := db.NewSelect().Model(shooter).Where("sh.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shooter: %w", err)
	}
	return shooter, nil
}

func (r *Impl) ShooterExists(ctx context.Context, db bun.IDB, first, last, email string) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Shooter)(nil)).
		Where("LOWER(sh.first_name) = LOWER(?)", first).
		Where("LOWER(sh.last_name) = LOWER(?)", last).
		Where("LOWER(sh.email) = LOWER(?)", email).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check shooter: %w", err)
	}
	return exists, nil
}

func (r *Impl) ListShooters(ctx context.Context, db bun.IDB) ([]Shooter, error) {
	db = r.resolveDB(db)
	var shooters []Shooter
	err := db.NewSelect().
		Model(&shooters).
		OrderExpr("sh.last_name ASC, sh.first_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shooters: %w", err)
	}
	return shooters, nil
}

func (r *Impl) UpdateShooterAverage(ctx context.Context, db bun.IDB, id uuid.UUID, average float64) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Shooter)(nil)).
		Set("average = ?", average).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update shooter average: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) ListSeasonTeams(ctx context.Context, db bun.IDB) ([]SeasonTeam, error) {
	db = r.resolveDB(db)
	var rows []SeasonTeam
	err := db.NewRaw(`
		SELECT DISTINCT s.season AS season, t.name AS team_name
		FROM scores AS s
		JOIN teams AS t ON t.id = s.team_id
		ORDER BY season DESC, team_name ASC`).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list season teams: %w", err)
	}
	return rows, nil
}

func (r *Impl) ListTeamsForSeason(ctx context.Context, db bun.IDB, season int) ([]Team, error) {
	db = r.resolveDB(db)
	var teams []Team
	err := db.NewSelect().
		Model(&teams).
		Where("EXISTS (SELECT 1 FROM scores AS s WHERE s.team_id = t.id AND s.season = ?)", season).
		OrderExpr("t.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for season: %w", err)
	}
	return teams, nil
}
