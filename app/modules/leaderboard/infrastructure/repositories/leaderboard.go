package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements Repository against Postgres.
type Impl struct{}

func NewRepository() Repository {
	return &Impl{}
}

func (r *Impl) MarkRecorded(ctx context.Context, db bun.IDB, sessionID uuid.UUID, at time.Time) (bool, error) {
	res, err := db.NewInsert().
		Model(&RecordedMatch{SessionID: sessionID, RecordedAt: at}).
		On("CONFLICT (session_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("leaderboarddb.MarkRecorded: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("leaderboarddb.MarkRecorded: %w", err)
	}
	return n > 0, nil
}

func (r *Impl) ApplyOutcome(ctx context.Context, db bun.IDB, outcome leaderboarddomain.Outcome, at time.Time) error {
	victories := victoriesOf(outcome)

	team := &TeamStat{
		Name:        outcome.Team,
		Victories:   victories,
		GamesPlayed: 1,
		Points:      outcome.Points,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	_, err := db.NewInsert().
		Model(team).
		On("CONFLICT (name) DO UPDATE").
		Set("victories = ?TableAlias.victories + EXCLUDED.victories").
		Set("games_played = ?TableAlias.games_played + EXCLUDED.games_played").
		Set("points = ?TableAlias.points + EXCLUDED.points").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("leaderboarddb.ApplyOutcome team %q: %w", outcome.Team, err)
	}

	if len(outcome.Players) == 0 {
		return nil
	}

	players := make([]PlayerStat, 0, len(outcome.Players))
	for _, name := range outcome.Players {
		players = append(players, PlayerStat{
			Name:        name,
			TeamName:    outcome.Team,
			Victories:   victories,
			GamesPlayed: 1,
			Points:      outcome.Points,
			CreatedAt:   at,
			UpdatedAt:   at,
		})
	}
	_, err = db.NewInsert().
		Model(&players).
		On("CONFLICT (name) DO UPDATE").
		Set("team_name = EXCLUDED.team_name").
		Set("victories = ?TableAlias.victories + EXCLUDED.victories").
		Set("games_played = ?TableAlias.games_played + EXCLUDED.games_played").
		Set("points = ?TableAlias.points + EXCLUDED.points").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("leaderboarddb.ApplyOutcome players of %q: %w", outcome.Team, err)
	}
	return nil
}

func (r *Impl) TeamStandings(ctx context.Context, db bun.IDB) ([]TeamStat, error) {
	var teams []TeamStat
	err := db.NewSelect().
		Model(&teams).
		OrderExpr("points DESC, victories DESC, name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("leaderboarddb.TeamStandings: %w", err)
	}
	return teams, nil
}

func (r *Impl) PlayerStandings(ctx context.Context, db bun.IDB) ([]PlayerStat, error) {
	var players []PlayerStat
	err := db.NewSelect().
		Model(&players).
		OrderExpr("points DESC, victories DESC, name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("leaderboarddb.PlayerStandings: %w", err)
	}
	return players, nil
}

func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, name string) (*PlayerStat, error) {
	player := new(PlayerStat)
	err := db.NewSelect().
		Model(player).
		Where("name = ?", name).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("leaderboarddb.GetPlayer: %w", err)
	}
	return player, nil
}

func (r *Impl) SavePlayer(ctx context.Context, db bun.IDB, player *PlayerStat) error {
	_, err := db.NewUpdate().
		Model(player).
		Column("team_name", "victories", "games_played", "points", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("leaderboarddb.SavePlayer: %w", err)
	}
	return nil
}

func (r *Impl) DeletePlayer(ctx context.Context, db bun.IDB, name string) error {
	res, err := db.NewDelete().
		Model((*PlayerStat)(nil)).
		Where("name = ?", name).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("leaderboarddb.DeletePlayer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) Reset(ctx context.Context, db bun.IDB) error {
	for _, model := range []any{(*PlayerStat)(nil), (*TeamStat)(nil), (*RecordedMatch)(nil)} {
		if _, err := db.NewDelete().Model(model).Where("TRUE").Exec(ctx); err != nil {
			return fmt.Errorf("leaderboarddb.Reset: %w", err)
		}
	}
	return nil
}
