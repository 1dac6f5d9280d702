package leaderboardhandlers

import (
	"context"
	"net/http"

	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
)

// Handlers serves the leaderboard endpoints and consumes finished matches.
type Handlers interface {
	HandleStandings(w http.ResponseWriter, r *http.Request)
	HandleMergePlayers(w http.ResponseWriter, r *http.Request)
	HandleReset(w http.ResponseWriter, r *http.Request)

	HandleMatchFinished(ctx context.Context, payload *sessionevents.MatchFinishedPayload) error
}
