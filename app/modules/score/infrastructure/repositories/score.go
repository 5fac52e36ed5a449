package scoredb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new score repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, score *Score) error {
	db = r.resolveDB(db)
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	y, m, d := score.MatchDate.Date()
	score.MatchDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	score.Season = y
	if score.CreatedAt.IsZero() {
		score.CreatedAt = time.Now().UTC()
	}
	res, err := db.NewInsert().
		Model(score).
		On("CONFLICT (shooter_id, season, week) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create score: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to create score: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: shooter %s season %d week %d", ErrDuplicateScore, score.ShooterID, score.Season, score.Week)
	}
	return nil
}

func (r *Impl) Exists(ctx context.Context, db bun.IDB, shooterID uuid.UUID, season, week int) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Score)(nil)).
		Where("s.shooter_id = ?", shooterID).
		Where("s.season = ?", season).
		Where("s.week = ?", week).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check score: %w", err)
	}
	return exists, nil
}

func (r *Impl) ListScorecardRows(ctx context.Context, db bun.IDB, teamName string, season int) ([]ScorecardRow, error) {
	db = r.resolveDB(db)
	var rows []ScorecardRow
	err := db.NewRaw(`
		SELECT t.name AS team_name, s.shooter_id, sh.first_name, sh.last_name, s.week, s.bunker_one, s.bunker_two
		FROM scores AS s
		JOIN shooters AS sh ON sh.id = s.shooter_id
		JOIN teams AS t ON t.id = s.team_id
		WHERE LOWER(t.name) = LOWER(?) AND s.season = ?
		ORDER BY sh.last_name ASC, sh.first_name ASC, s.shooter_id ASC, s.week ASC, s.created_at ASC`,
		teamName, season).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list scorecard rows: %w", err)
	}
	return rows, nil
}

func (r *Impl) ListShooterSeasonRows(ctx context.Context, db bun.IDB, shooterID uuid.UUID, season int) ([]ScorecardRow, error) {
	db = r.resolveDB(db)
	var rows []ScorecardRow
	err := db.NewRaw(`
		SELECT s.shooter_id, sh.first_name, sh.last_name, s.week, s.bunker_one, s.bunker_two
		FROM scores AS s
		JOIN shooters AS sh ON sh.id = s.shooter_id
		WHERE s.shooter_id = ? AND s.season = ?
		ORDER BY s.week ASC, s.created_at ASC`,
		shooterID, season).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list shooter rows: %w", err)
	}
	return rows, nil
}

func (r *Impl) ListTeamShooters(ctx context.Context, db bun.IDB, teamName string, season int) ([]RosterEntry, error) {
	db = r.resolveDB(db)
	var roster []RosterEntry
	err := db.NewRaw(`
		SELECT DISTINCT sh.id AS shooter_id, sh.first_name, sh.last_name
		FROM scores AS s
		JOIN shooters AS sh ON sh.id = s.shooter_id
		JOIN teams AS t ON t.id = s.team_id
		WHERE LOWER(t.name) = LOWER(?) AND s.season = ?
		ORDER BY sh.last_name ASC, sh.first_name ASC`,
		teamName, season).
		Scan(ctx, &roster)
	if err != nil {
		return nil, fmt.Errorf("failed to list team shooters: %w", err)
	}
	return roster, nil
}
