//go:build integration

package testutils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// appTables lists every table the modules write to.
var appTables = []string{
	"game_sessions",
	"team_stats",
	"player_stats",
	"recorded_matches",
}

// CleanupDatabase truncates the module tables and the river job table.
func CleanupDatabase(ctx context.Context, db *bun.DB) error {
	if err := TruncateTables(ctx, db, appTables...); err != nil {
		return err
	}
	return CleanupRiverJobs(ctx, db)
}

// TruncateTables empties the named tables.
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate %v: %w", tables, err)
	}
	return nil
}

// CleanupRiverJobs removes queued and finished river jobs.
func CleanupRiverJobs(ctx context.Context, db *bun.DB) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM river_job"); err != nil {
		return fmt.Errorf("failed to clean river jobs: %w", err)
	}
	return nil
}

// CountRiverJobs returns the number of jobs of kind.
func CountRiverJobs(ctx context.Context, db *bun.DB, kind string) (int, error) {
	var count int
	err := db.NewSelect().
		TableExpr("river_job").
		ColumnExpr("count(*)").
		Where("kind = ?", kind).
		Scan(ctx, &count)
	return count, err
}

// WaitFor polls check until it succeeds or timeout elapses.
func WaitFor(timeout, interval time.Duration, check func() error) error {
	deadline := time.Now().Add(timeout)
	for {
		err := check()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("condition not met after %v: %w", timeout, err)
		}
		time.Sleep(interval)
	}
}
