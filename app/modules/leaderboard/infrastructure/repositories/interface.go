package leaderboarddb

import (
	"context"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for team and player statistics.
type Repository interface {
	// MarkRecorded claims sessionID. It returns false when the session was
	// already credited.
	MarkRecorded(ctx context.Context, db bun.IDB, sessionID uuid.UUID, at time.Time) (bool, error)

	// ApplyOutcome adds one match to the team and its players.
	ApplyOutcome(ctx context.Context, db bun.IDB, outcome leaderboarddomain.Outcome, at time.Time) error

	TeamStandings(ctx context.Context, db bun.IDB) ([]TeamStat, error)
	PlayerStandings(ctx context.Context, db bun.IDB) ([]PlayerStat, error)

	GetPlayer(ctx context.Context, db bun.IDB, name string) (*PlayerStat, error)
	SavePlayer(ctx context.Context, db bun.IDB, player *PlayerStat) error
	DeletePlayer(ctx context.Context, db bun.IDB, name string) error

	// Reset clears every statistic and the recorded-match markers.
	Reset(ctx context.Context, db bun.IDB) error
}
