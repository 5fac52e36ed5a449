package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	leaguemigrations "github.com/Black-And-White-Club/citl/app/modules/league/infrastructure/repositories/migrations"
	scoremigrations "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories/migrations"
)

// ModuleMigrator is one module's migrator.
type ModuleMigrator struct {
	Name     string
	Migrator *migrate.Migrator
}

// Migrators returns every module's migrator in foreign key order. All of
// them share the default bun_migrations table.
func Migrators(db *bun.DB) []ModuleMigrator {
	return []ModuleMigrator{
		{Name: "league", Migrator: migrate.NewMigrator(db, leaguemigrations.Migrations)},
		{Name: "score", Migrator: migrate.NewMigrator(db, scoremigrations.Migrations)},
	}
}

// Migrate initialises the migration tables and applies every module's
// pending migrations.
func Migrate(ctx context.Context, db *bun.DB) error {
	migrators := Migrators(db)
	if err := migrators[0].Migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}
	for _, m := range migrators {
		if _, err := m.Migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", m.Name, err)
		}
	}
	return nil
}
