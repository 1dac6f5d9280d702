package exportqueue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	exportservice "github.com/Black-And-White-Club/belote-bot/app/modules/export/application"
	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	"github.com/Black-And-White-Club/belote-bot/pkg/attr"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// Publisher is the part of the export service the worker drives.
type Publisher interface {
	Publish(ctx context.Context, id uuid.UUID) (*exportservice.Published, error)
}

// ExportMatchWorker publishes the files of one session.
type ExportMatchWorker struct {
	river.WorkerDefaults[ExportMatchJob]
	exports Publisher
	logger  *slog.Logger
}

// NewExportMatchWorker creates the worker.
func NewExportMatchWorker(logger *slog.Logger, exports Publisher) *ExportMatchWorker {
	return &ExportMatchWorker{exports: exports, logger: logger}
}

// Timeout bounds a single render and upload.
func (w *ExportMatchWorker) Timeout(*river.Job[ExportMatchJob]) time.Duration {
	return time.Minute
}

// Work runs the export. Sessions that are gone or cannot be exported are
// cancelled instead of retried.
func (w *ExportMatchWorker) Work(ctx context.Context, job *river.Job[ExportMatchJob]) error {
	logger := w.logger.With(
		attr.SessionID(job.Args.SessionID),
		attr.Int64("job_id", job.ID),
		attr.Int("attempt", job.Attempt),
	)

	published, err := w.exports.Publish(ctx, job.Args.SessionID)
	if err != nil {
		if isPermanent(err) {
			logger.WarnContext(ctx, "Export cancelled", attr.Error(err))
			return river.JobCancel(err)
		}
		logger.ErrorContext(ctx, "Export failed", attr.Error(err))
		return err
	}

	logger.InfoContext(ctx, "Export published",
		attr.String("workbook_url", published.WorkbookURL),
		attr.String("chart_url", published.ChartURL),
	)
	return nil
}

func isPermanent(err error) bool {
	return errors.Is(err, sessiondb.ErrNotFound) ||
		errors.Is(err, exportservice.ErrStorageDisabled) ||
		exportservice.IsValidationError(err)
}
