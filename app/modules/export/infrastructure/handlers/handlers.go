package exporthandlers

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	exportservice "github.com/Black-And-White-Club/belote-bot/app/modules/export/application"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	"github.com/Black-And-White-Club/belote-bot/pkg/attr"
	"github.com/Black-And-White-Club/belote-bot/pkg/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Enqueuer schedules the background export of a session.
type Enqueuer interface {
	EnqueueExport(ctx context.Context, sessionID uuid.UUID) error
}

// ExportHandlers handles export requests and events.
type ExportHandlers struct {
	service exportservice.Service
	queue   Enqueuer
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewExportHandlers creates a new instance of ExportHandlers. A nil queue
// leaves finished matches unexported.
func NewExportHandlers(service exportservice.Service, queue Enqueuer, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &ExportHandlers{
		service: service,
		queue:   queue,
		logger:  logger,
		tracer:  tracer,
	}
}

// Routes mounts the download endpoints on the session subtree.
func Routes(h Handlers) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/{id}/export.xlsx", h.HandleWorkbook)
		r.Get("/{id}/chart.png", h.HandleChart)
	}
}

func (h *ExportHandlers) HandleWorkbook(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.Workbook, "attachment")
}

func (h *ExportHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.Chart, "inline")
}

func (h *ExportHandlers) serve(w http.ResponseWriter, r *http.Request, render func(context.Context, uuid.UUID) (*exportservice.File, error), disposition string) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	file, err := render(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, sessiondb.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "session not found")
		return
	case exportservice.IsValidationError(err):
		httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	default:
		h.logger.ErrorContext(ctx, "Failed to render export",
			attr.ExtractCorrelationID(ctx),
			attr.SessionID(id),
			attr.Error(err),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": file.Name}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		h.logger.WarnContext(ctx, "Failed to write export", attr.SessionID(id), attr.Error(err))
	}
}

// HandleMatchFinished queues the export of a finished match.
func (h *ExportHandlers) HandleMatchFinished(ctx context.Context, payload *sessionevents.MatchFinishedPayload) error {
	if h.queue == nil {
		return nil
	}
	h.logger.InfoContext(ctx, "Received MatchFinished event",
		attr.ExtractCorrelationID(ctx),
		attr.SessionID(payload.SessionID),
	)
	return h.queue.EnqueueExport(ctx, payload.SessionID)
}
