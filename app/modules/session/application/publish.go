package sessionservice

import (
	"context"
	"encoding/json"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
	"github.com/Black-And-White-Club/belote-bot/pkg/attr"
	"github.com/Black-And-White-Club/belote-bot/pkg/eventbus"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

// newMessage encodes payload and carries the correlation ID along.
func newMessage(ctx context.Context, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	if id := attr.CorrelationID(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}
	return msg, nil
}

// publishSessionUpdated pushes the new snapshot to realtime subscribers.
// Failures are logged only: the state is already committed.
func (s *SessionService) publishSessionUpdated(ctx context.Context, action string, id uuid.UUID, state scoringdomain.MatchState, flash *sessionevents.FlashAlert) {
	if s.publisher == nil {
		return
	}
	msg, err := newMessage(ctx, sessionevents.SessionUpdatedPayload{
		SessionID: id,
		Action:    action,
		State:     state,
		Flash:     flash,
		UpdatedAt: s.now().UTC(),
	})
	if err == nil {
		err = eventbus.PublishWithSessionScope(s.publisher, sessionevents.SessionUpdatedV1, id.String(), msg)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish session update",
			attr.ExtractCorrelationID(ctx),
			attr.String("session_id", id.String()),
			attr.String("action", action),
			attr.Error(err),
		)
	}
}

// publishMatchFinished announces a match that just reached its threshold.
func (s *SessionService) publishMatchFinished(ctx context.Context, snapshot *SessionSnapshot) {
	if s.publisher == nil {
		return
	}
	state := snapshot.State
	msg, err := newMessage(ctx, sessionevents.MatchFinishedPayload{
		SessionID:  snapshot.ID,
		TeamA:      state.TeamA,
		TeamB:      state.TeamB,
		TotalA:     snapshot.TotalA,
		TotalB:     snapshot.TotalB,
		Winner:     snapshot.Winner,
		BonusMalus: state.Outcome(),
		FinishedAt: s.now().UTC(),
	})
	if err == nil {
		err = s.publisher.Publish(sessionevents.MatchFinishedV1, msg)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish match finished event",
			attr.ExtractCorrelationID(ctx),
			attr.String("session_id", snapshot.ID.String()),
			attr.Error(err),
		)
		return
	}
	s.logger.InfoContext(ctx, "Match finished",
		attr.ExtractCorrelationID(ctx),
		attr.String("session_id", snapshot.ID.String()),
		attr.String("winner", state.TeamName(snapshot.Winner)),
		attr.Int("total_a", snapshot.TotalA),
		attr.Int("total_b", snapshot.TotalB),
	)
}
