package sessionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating game_sessions table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS game_sessions (
					session_id UUID PRIMARY KEY,
					team_a_name VARCHAR(100) NOT NULL,
					team_b_name VARCHAR(100) NOT NULL,
					team_a_players TEXT[] NOT NULL DEFAULT '{}',
					team_b_players TEXT[] NOT NULL DEFAULT '{}',
					dealer SMALLINT NOT NULL DEFAULT 0 CHECK (dealer BETWEEN 0 AND 3),
					victory_threshold INTEGER NOT NULL DEFAULT 2000,
					rounds JSONB NOT NULL DEFAULT '[]'::jsonb,
					team_a_total INTEGER NOT NULL DEFAULT 0,
					team_b_total INTEGER NOT NULL DEFAULT 0,
					is_finished BOOLEAN NOT NULL DEFAULT FALSE,
					winner VARCHAR(1),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_game_sessions_updated_at ON game_sessions(updated_at DESC);
				CREATE INDEX IF NOT EXISTS idx_game_sessions_created_at ON game_sessions(created_at);
			`); err != nil {
				return fmt.Errorf("failed to create game_sessions table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping game_sessions table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS game_sessions;`); err != nil {
				return fmt.Errorf("failed to drop game_sessions table: %w", err)
			}
			return nil
		})
	})
}
