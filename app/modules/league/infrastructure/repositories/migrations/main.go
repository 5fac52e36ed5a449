package leaguemigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the roster schema. Run it before the score migrations.
var Migrations = migrate.NewMigrations()
