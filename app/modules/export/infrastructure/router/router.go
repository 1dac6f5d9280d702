package exportrouter

import (
	"context"
	"log/slog"

	exporthandlers "github.com/Black-And-White-Club/belote-bot/app/modules/export/infrastructure/handlers"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
	"github.com/Black-And-White-Club/belote-bot/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// ExportRouter binds the export event handlers to the shared router.
type ExportRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber message.Subscriber
	tracer     trace.Tracer
}

// NewExportRouter creates a new instance of the router.
func NewExportRouter(logger *slog.Logger, router *message.Router, subscriber message.Subscriber, tracer trace.Tracer) *ExportRouter {
	return &ExportRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		tracer:     tracer,
	}
}

// Configure registers the export handlers.
func (r *ExportRouter) Configure(ctx context.Context, handlers exporthandlers.Handlers) error {
	r.logger.InfoContext(ctx, "Registering Export Event Handlers")

	handlerName := "export." + sessionevents.MatchFinishedV1
	r.Router.AddNoPublisherHandler(
		handlerName,
		sessionevents.MatchFinishedV1,
		r.subscriber,
		handlerwrapper.WrapTyped(handlerName, r.logger, r.tracer, handlers.HandleMatchFinished),
	)
	return nil
}
