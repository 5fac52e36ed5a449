package leaguemigrations

import (
	"context"
	"fmt"

	leaguedb "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating teams and shooters tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().Model((*leaguedb.Team)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create teams table: %w", err)
			}
			if _, err := tx.NewCreateTable().Model((*leaguedb.Shooter)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create shooters table: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`CREATE INDEX IF NOT EXISTS idx_shooters_identity ON shooters(last_name, first_name, email)`,
			); err != nil {
				return fmt.Errorf("failed to index shooters: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping teams and shooters tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewDropTable().Model((*leaguedb.Shooter)(nil)).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop shooters table: %w", err)
			}
			if _, err := tx.NewDropTable().Model((*leaguedb.Team)(nil)).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop teams table: %w", err)
			}
			return nil
		})
	})
}
