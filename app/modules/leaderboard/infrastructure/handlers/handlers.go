package leaderboardhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	leaderboardservice "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/application"
	leaderboarddb "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/infrastructure/repositories"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
	"github.com/Black-And-White-Club/belote-bot/pkg/attr"
	"github.com/Black-And-White-Club/belote-bot/pkg/httpx"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardHandlers handles leaderboard requests and events.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewLeaderboardHandlers creates a new instance of LeaderboardHandlers.
func NewLeaderboardHandlers(service leaderboardservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &LeaderboardHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// Routes mounts the leaderboard endpoints on r.
func Routes(r chi.Router, h Handlers, admin func(http.Handler) http.Handler) {
	r.Get("/", h.HandleStandings)
	r.Group(func(r chi.Router) {
		r.Use(admin)
		r.Post("/players/merge", h.HandleMergePlayers)
		r.Post("/reset", h.HandleReset)
	})
}

// MergeRequest names the player to fold and the one that absorbs it.
type MergeRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

func (h *LeaderboardHandlers) HandleStandings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	standings, err := h.service.Standings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to load standings", attr.ExtractCorrelationID(ctx), attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := httpx.WriteJSON(w, http.StatusOK, standings); err != nil {
		h.logger.WarnContext(ctx, "Failed to encode response", attr.Error(err))
	}
}

func (h *LeaderboardHandlers) HandleMergePlayers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	merged, err := h.service.MergePlayers(ctx, req.Source, req.Target)
	switch {
	case err == nil:
		h.logger.InfoContext(ctx, "Players merged",
			attr.ExtractCorrelationID(ctx),
			attr.String("source", req.Source),
			attr.String("target", req.Target),
		)
		if err := httpx.WriteJSON(w, http.StatusOK, merged); err != nil {
			h.logger.WarnContext(ctx, "Failed to encode response", attr.Error(err))
		}
	case errors.Is(err, leaderboarddb.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "player not found")
	case leaderboardservice.IsValidationError(err):
		httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.ErrorContext(ctx, "Failed to merge players", attr.ExtractCorrelationID(ctx), attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *LeaderboardHandlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Reset(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Failed to reset leaderboard", attr.ExtractCorrelationID(ctx), attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.logger.WarnContext(ctx, "Leaderboard reset", attr.ExtractCorrelationID(ctx))
	w.WriteHeader(http.StatusNoContent)
}

// HandleMatchFinished credits a finished match to the standings.
func (h *LeaderboardHandlers) HandleMatchFinished(ctx context.Context, payload *sessionevents.MatchFinishedPayload) error {
	h.logger.InfoContext(ctx, "Received MatchFinished event",
		attr.ExtractCorrelationID(ctx),
		attr.SessionID(payload.SessionID),
		attr.String("winner", string(payload.Winner)),
	)

	recorded, err := h.service.RecordMatch(ctx, *payload)
	if err != nil {
		return err
	}
	if recorded {
		h.logger.InfoContext(ctx, "Match recorded on leaderboard",
			attr.ExtractCorrelationID(ctx),
			attr.SessionID(payload.SessionID),
		)
	}
	return nil
}
