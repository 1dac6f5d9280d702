package exportqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/belote-bot/pkg/attr"
	"github.com/Black-And-White-Club/belote-bot/pkg/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

// QueueService defines the contract for export job scheduling.
type QueueService interface {
	// EnqueueExport schedules the export of a finished session. A session
	// already queued or exported is not queued again.
	EnqueueExport(ctx context.Context, sessionID uuid.UUID) error
	// Start starts the queue service
	Start(ctx context.Context) error
	// Stop stops the queue service
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service runs export jobs on River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics metrics.OperationMetrics
}

// NewService creates a River client with the export worker registered.
func NewService(ctx context.Context, logger *slog.Logger, dsn string, metrics metrics.OperationMetrics, exports Publisher) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_export_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	ctxLogger.Info("Initializing export queue service")

	pool, err := NewPool(ctx, dsn)
	if err != nil {
		ctxLogger.Error("Failed to connect River pool", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, err
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewExportMatchWorker(ctxLogger, exports))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			Queue:              {MaxWorkers: 5},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))

	ctxLogger.Info("Export queue service initialized successfully")
	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		metrics: metrics,
	}, nil
}

// NewPool opens and pings the pgx pool River runs on.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Start starts the River queue service
func (s *Service) Start(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")

	s.logger.Info("Starting export queue service")

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.metrics.RecordOperationDuration(ctx, "start_service", "river", time.Since(start))

	s.logger.Info("Export queue service started successfully")
	return nil
}

// Stop waits for running jobs, then releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")

	s.logger.Info("Stopping export queue service")
	defer s.pool.Close()

	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	s.metrics.RecordOperationDuration(ctx, "stop_service", "river", time.Since(start))

	s.logger.Info("Export queue service stopped successfully")
	return nil
}

// EnqueueExport inserts an export job for the session.
func (s *Service) EnqueueExport(ctx context.Context, sessionID uuid.UUID) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "enqueue_export", "river")

	ctxLogger := s.logger.With(
		attr.SessionID(sessionID),
		attr.String("operation", "enqueue_export"),
	)

	jobResult, err := s.client.Insert(ctx, ExportMatchJob{SessionID: sessionID}, &river.InsertOpts{
		Queue: Queue,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		ctxLogger.ErrorContext(ctx, "Failed to enqueue export job", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "enqueue_export", "river")
		return fmt.Errorf("failed to enqueue export job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "enqueue_export", "river")
	s.metrics.RecordOperationDuration(ctx, "enqueue_export", "river", time.Since(start))

	if jobResult.UniqueSkippedAsDuplicate {
		ctxLogger.InfoContext(ctx, "Export job already queued", attr.Int64("job_id", jobResult.Job.ID))
		return nil
	}
	ctxLogger.InfoContext(ctx, "Export job queued", attr.Int64("job_id", jobResult.Job.ID))
	return nil
}
