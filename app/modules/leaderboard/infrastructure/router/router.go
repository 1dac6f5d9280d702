package leaderboardrouter

import (
	"context"
	"log/slog"

	leaderboardhandlers "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/infrastructure/handlers"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
	"github.com/Black-And-White-Club/belote-bot/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardRouter binds the leaderboard event handlers to the shared router.
type LeaderboardRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber message.Subscriber
	tracer     trace.Tracer
}

// NewLeaderboardRouter creates a new instance of the router.
func NewLeaderboardRouter(logger *slog.Logger, router *message.Router, subscriber message.Subscriber, tracer trace.Tracer) *LeaderboardRouter {
	return &LeaderboardRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		tracer:     tracer,
	}
}

// Configure registers the leaderboard handlers.
func (r *LeaderboardRouter) Configure(ctx context.Context, handlers leaderboardhandlers.Handlers) error {
	r.logger.InfoContext(ctx, "Registering Leaderboard Event Handlers")

	handlerName := "leaderboard." + sessionevents.MatchFinishedV1
	r.Router.AddNoPublisherHandler(
		handlerName,
		sessionevents.MatchFinishedV1,
		r.subscriber,
		handlerwrapper.WrapTyped(handlerName, r.logger, r.tracer, handlers.HandleMatchFinished),
	)
	return nil
}
