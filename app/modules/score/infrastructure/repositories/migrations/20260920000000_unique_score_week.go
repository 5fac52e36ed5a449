package scoremigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Enforcing one score per shooter per week...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, stmt := range []string{
				`DROP INDEX IF EXISTS idx_scores_shooter_season_week`,
				`CREATE UNIQUE INDEX IF NOT EXISTS uq_scores_shooter_season_week ON scores(shooter_id, season, week)`,
			} {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("failed to add unique score index: %w", err)
				}
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Relaxing score uniqueness...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, stmt := range []string{
				`DROP INDEX IF EXISTS uq_scores_shooter_season_week`,
				`CREATE INDEX IF NOT EXISTS idx_scores_shooter_season_week ON scores(shooter_id, season, week)`,
			} {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("failed to drop unique score index: %w", err)
				}
			}
			return nil
		})
	})
}
