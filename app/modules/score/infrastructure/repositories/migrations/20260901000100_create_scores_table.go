package scoremigrations

import (
	"context"
	"fmt"

	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scores table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().
				Model((*scoredb.Score)(nil)).
				IfNotExists().
				ForeignKey(`("shooter_id") REFERENCES "shooters" ("id") ON DELETE CASCADE`).
				ForeignKey(`("team_id") REFERENCES "teams" ("id") ON DELETE CASCADE`).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create scores table: %w", err)
			}

			for _, stmt := range []string{
				`CREATE INDEX IF NOT EXISTS idx_scores_team_season ON scores(team_id, season)`,
				`CREATE INDEX IF NOT EXISTS idx_scores_shooter_season_week ON scores(shooter_id, season, week)`,
			} {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("failed to index scores: %w", err)
				}
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scores table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewDropTable().Model((*scoredb.Score)(nil)).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop scores table: %w", err)
			}
			return nil
		})
	})
}
