package app

import (
	"context"
	"database/sql"
	"fmt"

	leaderboardmigrations "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/infrastructure/repositories/migrations"
	sessionmigrations "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// OpenDB opens a bun handle on the Postgres DSN.
func OpenDB(dsn string) *bun.DB {
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(pgdb, pgdialect.New())
}

// ModuleMigrations lists the migration set of every module, in the order
// they must run.
var ModuleMigrations = []struct {
	Name       string
	Migrations *migrate.Migrations
}{
	{"session", sessionmigrations.Migrations},
	{"leaderboard", leaderboardmigrations.Migrations},
}

// NewMigrator returns a migrator that keeps its bookkeeping in tables of
// its own, so each module rolls back independently.
func NewMigrator(db *bun.DB, name string, migrations *migrate.Migrations) *migrate.Migrator {
	return migrate.NewMigrator(db, migrations,
		migrate.WithTableName("bun_migrations_"+name),
		migrate.WithLocksTableName("bun_migration_locks_"+name),
	)
}

// Migrate initializes and applies every module's migrations.
func Migrate(ctx context.Context, db *bun.DB) error {
	for _, mod := range ModuleMigrations {
		migrator := NewMigrator(db, mod.Name, mod.Migrations)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize %s migrations: %w", mod.Name, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.Name, err)
		}
	}
	return nil
}
