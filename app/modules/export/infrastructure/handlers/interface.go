package exporthandlers

import (
	"context"
	"net/http"

	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
)

// Handlers serves match downloads and queues exports of finished matches.
type Handlers interface {
	HandleWorkbook(w http.ResponseWriter, r *http.Request)
	HandleChart(w http.ResponseWriter, r *http.Request)

	HandleMatchFinished(ctx context.Context, payload *sessionevents.MatchFinishedPayload) error
}
