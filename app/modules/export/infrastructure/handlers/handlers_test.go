package exporthandlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	exportservice "github.com/Black-And-White-Club/belote-bot/app/modules/export/application"
	exportdomain "github.com/Black-And-White-Club/belote-bot/app/modules/export/domain"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestHandlers(svc *FakeService, queue Enqueuer) Handlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewExportHandlers(svc, queue, logger, noop.NewTracerProvider().Tracer("test"))
}

func newTestRouter(svc *FakeService) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/sessions", Routes(newTestHandlers(svc, nil)))
	return r
}

func TestHandleWorkbook(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{name: "ok", path: "/api/sessions/" + id.String() + "/export.xlsx", wantStatus: http.StatusOK},
		{name: "bad id", path: "/api/sessions/nope/export.xlsx", wantStatus: http.StatusBadRequest},
		{name: "missing", path: "/api/sessions/" + id.String() + "/export.xlsx", err: sessiondb.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "empty match", path: "/api/sessions/" + id.String() + "/export.xlsx", err: exportdomain.ErrNothingToExport, wantStatus: http.StatusUnprocessableEntity},
		{name: "failure", path: "/api/sessions/" + id.String() + "/export.xlsx", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{
				WorkbookFunc: func(ctx context.Context, got uuid.UUID) (*exportservice.File, error) {
					assert.Equal(t, id, got)
					if tt.err != nil {
						return nil, tt.err
					}
					return &exportservice.File{Name: "Belote_a_vs_b_2026-03-14.xlsx", ContentType: exportservice.ContentTypeXLSX, Data: []byte("xlsx")}, nil
				},
			}

			rr := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, exportservice.ContentTypeXLSX, rr.Header().Get("Content-Type"))
				assert.Equal(t, `attachment; filename=Belote_a_vs_b_2026-03-14.xlsx`, rr.Header().Get("Content-Disposition"))
				assert.Equal(t, "xlsx", rr.Body.String())
			}
		})
	}
}

func TestHandleChart(t *testing.T) {
	id := uuid.New()
	svc := &FakeService{
		ChartFunc: func(ctx context.Context, got uuid.UUID) (*exportservice.File, error) {
			return &exportservice.File{Name: "chart.png", ContentType: exportservice.ContentTypePNG, Data: []byte("png")}, nil
		},
	}

	rr := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/sessions/"+id.String()+"/chart.png", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, exportservice.ContentTypePNG, rr.Header().Get("Content-Type"))
	assert.Equal(t, "inline; filename=chart.png", rr.Header().Get("Content-Disposition"))
}

func TestHandleMatchFinished(t *testing.T) {
	id := uuid.New()
	payload := &sessionevents.MatchFinishedPayload{SessionID: id}

	queue := &FakeQueue{}
	require.NoError(t, newTestHandlers(&FakeService{}, queue).HandleMatchFinished(context.Background(), payload))
	assert.Equal(t, []uuid.UUID{id}, queue.Enqueued)

	queue.Err = errors.New("database down")
	assert.ErrorIs(t, newTestHandlers(&FakeService{}, queue).HandleMatchFinished(context.Background(), payload), queue.Err)

	assert.NoError(t, newTestHandlers(&FakeService{}, nil).HandleMatchFinished(context.Background(), payload))
}
