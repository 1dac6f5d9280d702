package leaderboardservice

import (
	"context"

	leaderboarddomain "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/domain"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
)

// Service defines the contract for leaderboard operations.
type Service interface {
	// RecordMatch credits a finished match. Redelivered matches are ignored
	// and reported with recorded == false.
	RecordMatch(ctx context.Context, match sessionevents.MatchFinishedPayload) (recorded bool, err error)
	Standings(ctx context.Context) (*Standings, error)
	MergePlayers(ctx context.Context, source, target string) (*leaderboarddomain.Entry, error)
	Reset(ctx context.Context) error
}

// Standings is the full leaderboard.
type Standings struct {
	Teams   []leaderboarddomain.Ranked `json:"teams"`
	Players []leaderboarddomain.Ranked `json:"players"`
}
