package exportservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	exportdomain "github.com/Black-And-White-Club/belote-bot/app/modules/export/domain"
	exportevents "github.com/Black-And-White-Club/belote-bot/app/modules/export/events"
	sessionservice "github.com/Black-And-White-Club/belote-bot/app/modules/session/application"
	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	"github.com/Black-And-White-Club/belote-bot/pkg/attr"
	"github.com/Black-And-White-Club/belote-bot/pkg/results"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

// Workbook renders the score sheets of a session.
func (s *ExportService) Workbook(ctx context.Context, id uuid.UUID) (*File, error) {
	result, err := withTelemetry(s, ctx, "Workbook", id.String(), func(ctx context.Context) (results.OperationResult[*File, error], error) {
		snapshot, failure, err := s.loadSession(ctx, id)
		if failure != nil || err != nil {
			return results.OperationResult[*File, error]{Failure: failure}, err
		}
		return s.workbookFile(snapshot)
	})
	return unwrap(result, err)
}

// Chart renders the score progression of a session.
func (s *ExportService) Chart(ctx context.Context, id uuid.UUID) (*File, error) {
	result, err := withTelemetry(s, ctx, "Chart", id.String(), func(ctx context.Context) (results.OperationResult[*File, error], error) {
		snapshot, failure, err := s.loadSession(ctx, id)
		if failure != nil || err != nil {
			return results.OperationResult[*File, error]{Failure: failure}, err
		}
		return s.chartFile(snapshot)
	})
	return unwrap(result, err)
}

// Publish uploads both files of a session and announces their URLs.
func (s *ExportService) Publish(ctx context.Context, id uuid.UUID) (*Published, error) {
	result, err := withTelemetry(s, ctx, "Publish", id.String(), func(ctx context.Context) (results.OperationResult[*Published, error], error) {
		if s.storage == nil {
			return results.FailureResult[*Published](ErrStorageDisabled), nil
		}

		snapshot, failure, err := s.loadSession(ctx, id)
		if failure != nil || err != nil {
			return results.OperationResult[*Published, error]{Failure: failure}, err
		}

		workbook, err := s.workbookFile(snapshot)
		if err != nil || workbook.IsFailure() {
			return results.OperationResult[*Published, error]{Failure: workbook.Failure}, err
		}
		chart, err := s.chartFile(snapshot)
		if err != nil || chart.IsFailure() {
			return results.OperationResult[*Published, error]{Failure: chart.Failure}, err
		}

		published := &Published{SessionID: id}
		for _, upload := range []struct {
			file *File
			url  *string
		}{
			{*workbook.Success, &published.WorkbookURL},
			{*chart.Success, &published.ChartURL},
		} {
			url, err := s.storage.Upload(ctx, exportdomain.ObjectKey(id, upload.file.Name), upload.file.ContentType, upload.file.Data)
			if err != nil {
				return results.OperationResult[*Published, error]{}, fmt.Errorf("failed to upload %s: %w", upload.file.Name, err)
			}
			*upload.url = url
		}

		s.publishExported(ctx, published)
		return results.SuccessResult[*Published, error](published), nil
	})
	return unwrap(result, err)
}

// loadSession separates a missing or invalid session, reported as a
// failure, from a storage error.
func (s *ExportService) loadSession(ctx context.Context, id uuid.UUID) (*sessionservice.SessionSnapshot, *error, error) {
	snapshot, err := s.sessions.GetSession(ctx, id)
	switch {
	case err == nil:
		return snapshot, nil, nil
	case errors.Is(err, sessiondb.ErrNotFound) || sessionservice.IsValidationError(err):
		return nil, &err, nil
	}
	return nil, nil, fmt.Errorf("failed to load session: %w", err)
}

func (s *ExportService) workbookFile(snapshot *sessionservice.SessionSnapshot) (results.OperationResult[*File, error], error) {
	data, err := BuildWorkbook(snapshot)
	if errors.Is(err, exportdomain.ErrNothingToExport) {
		return results.FailureResult[*File](err), nil
	}
	if err != nil {
		return results.OperationResult[*File, error]{}, err
	}
	return results.SuccessResult[*File, error](&File{
		Name:        exportdomain.Filename(snapshot.TeamA.Name, snapshot.TeamB.Name, s.exportDay(snapshot)),
		ContentType: ContentTypeXLSX,
		Data:        data,
	}), nil
}

func (s *ExportService) chartFile(snapshot *sessionservice.SessionSnapshot) (results.OperationResult[*File, error], error) {
	data, err := BuildChart(snapshot, s.palette)
	if err != nil {
		return results.OperationResult[*File, error]{}, err
	}
	return results.SuccessResult[*File, error](&File{
		Name:        exportdomain.ChartFilename(snapshot.TeamA.Name, snapshot.TeamB.Name, s.exportDay(snapshot)),
		ContentType: ContentTypePNG,
		Data:        data,
	}), nil
}

// exportDay dates a finished match by its last update, anything else by today.
func (s *ExportService) exportDay(snapshot *sessionservice.SessionSnapshot) time.Time {
	if snapshot.Finished && !snapshot.UpdatedAt.IsZero() {
		return snapshot.UpdatedAt.UTC()
	}
	return s.now().UTC()
}

func (s *ExportService) publishExported(ctx context.Context, published *Published) {
	if s.publisher == nil {
		return
	}
	msg, err := newMessage(ctx, exportevents.ExportPublishedPayload{
		SessionID:   published.SessionID,
		WorkbookURL: published.WorkbookURL,
		ChartURL:    published.ChartURL,
		PublishedAt: s.now().UTC(),
	})
	if err == nil {
		err = s.publisher.Publish(exportevents.ExportPublishedV1, msg)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish export event",
			attr.ExtractCorrelationID(ctx),
			attr.String("session_id", published.SessionID.String()),
			attr.Error(err),
		)
	}
}

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
