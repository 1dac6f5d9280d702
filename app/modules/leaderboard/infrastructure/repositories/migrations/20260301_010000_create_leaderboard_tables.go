package leaderboardmigrations

import (
	"context"
	"fmt"

	leaderboarddb "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating team_stats, player_stats and recorded_matches tables...")

		for _, model := range []any{
			(*leaderboarddb.TeamStat)(nil),
			(*leaderboarddb.PlayerStat)(nil),
			(*leaderboarddb.RecordedMatch)(nil),
		} {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		_, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_team_stats_points ON team_stats (points DESC, victories DESC)").Exec(ctx)
		if err != nil {
			return err
		}
		_, err = db.NewRaw("CREATE INDEX IF NOT EXISTS idx_player_stats_points ON player_stats (points DESC, victories DESC)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Leaderboard tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping leaderboard tables...")

		for _, model := range []any{
			(*leaderboarddb.RecordedMatch)(nil),
			(*leaderboarddb.PlayerStat)(nil),
			(*leaderboarddb.TeamStat)(nil),
		} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Leaderboard tables dropped successfully!")
		return nil
	})
}
