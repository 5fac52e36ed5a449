package scoremigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the scores schema. It references the roster tables.
var Migrations = migrate.NewMigrations()
