package sessionhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	sessionservice "github.com/Black-And-White-Club/belote-bot/app/modules/session/application"
	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	"github.com/Black-And-White-Club/belote-bot/pkg/attr"
	"github.com/Black-And-White-Club/belote-bot/pkg/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// SessionHandlers handles session HTTP requests.
type SessionHandlers struct {
	service sessionservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewSessionHandlers creates a new instance of SessionHandlers.
func NewSessionHandlers(service sessionservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &SessionHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// Routes mounts the session endpoints on r. admin guards the destructive ones.
func Routes(r chi.Router, h Handlers, admin func(http.Handler) http.Handler) {
	r.Post("/", h.HandleCreateSession)
	r.Get("/history", h.HandleHistory)
	r.Get("/{id}", h.HandleGetSession)
	r.Post("/{id}/rounds", h.HandleAddRound)
	r.Delete("/{id}/rounds/last", h.HandleUndoRound)
	r.Post("/{id}/misdeal", h.HandleMisdeal)
	r.Post("/{id}/skip", h.HandleSkipTurn)
	r.Get("/{id}/outcome", h.HandleOutcome)
	r.With(admin).Delete("/{id}", h.HandleDeleteSession)
}

// sessionID parses the {id} URL parameter, answering 400 when it is malformed.
func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps a service error onto a status code.
func (h *SessionHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, sessiondb.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "session not found")
	case sessionservice.IsValidationError(err):
		h.logger.InfoContext(ctx, "Rejected session request",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", op),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.ErrorContext(ctx, "Session request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", op),
			attr.Error(err),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *SessionHandlers) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := httpx.WriteJSON(w, status, v); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to encode response", attr.Error(err))
	}
}
