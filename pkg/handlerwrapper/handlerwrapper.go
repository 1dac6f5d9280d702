// Package handlerwrapper adapts typed event handlers to watermill.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/belote-bot/pkg/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// WrapTyped decodes the JSON payload of each message into a T and calls
// handler. Undecodable messages are logged and acknowledged. Handler errors
// are returned so the router's retry and poison queue middleware see them.
func WrapTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	handler func(ctx context.Context, payload *T) error,
) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ctx := msg.Context()
		if id := middleware.MessageCorrelationID(msg); id != "" {
			ctx = attr.WithCorrelationID(ctx, id)
		}

		var span trace.Span
		if tracer != nil {
			ctx, span = tracer.Start(ctx, handlerName, trace.WithAttributes(
				attribute.String("message.uuid", msg.UUID),
				attribute.String("handler", handlerName),
			))
			defer span.End()
		}

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.ErrorContext(ctx, "Dropping undecodable message",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.String("message_uuid", msg.UUID),
				attr.Error(err),
			)
			return nil
		}

		if err := handler(ctx, payload); err != nil {
			wrapped := fmt.Errorf("%s: %w", handlerName, err)
			logger.ErrorContext(ctx, "Event handler failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.String("message_uuid", msg.UUID),
				attr.Error(wrapped),
			)
			if span != nil {
				span.RecordError(wrapped)
				span.SetStatus(codes.Error, wrapped.Error())
			}
			return wrapped
		}

		return nil
	}
}
