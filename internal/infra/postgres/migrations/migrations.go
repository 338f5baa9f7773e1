package migrations

import "github.com/uptrace/bun/migrate"

// Migrations is the registry the migrate CLI subcommand applies.
var Migrations = migrate.NewMigrations()
