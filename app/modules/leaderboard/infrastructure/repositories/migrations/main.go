package leaderboardmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the leaderboard schema history.
var Migrations = migrate.NewMigrations()
