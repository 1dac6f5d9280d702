package export

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	exportservice "github.com/Black-And-White-Club/belote-bot/app/modules/export/application"
	exporthandlers "github.com/Black-And-White-Club/belote-bot/app/modules/export/infrastructure/handlers"
	exportqueue "github.com/Black-And-White-Club/belote-bot/app/modules/export/infrastructure/queue"
	exportrouter "github.com/Black-And-White-Club/belote-bot/app/modules/export/infrastructure/router"
	exportstorage "github.com/Black-And-White-Club/belote-bot/app/modules/export/infrastructure/storage"
	"github.com/Black-And-White-Club/belote-bot/config"
	"github.com/Black-And-White-Club/belote-bot/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
)

// Module represents the export module. Without storage it only serves
// downloads; with storage it also publishes every finished match.
type Module struct {
	ExportService exportservice.Service
	ExportRouter  *exportrouter.ExportRouter
	queue         *exportqueue.Service
	handlers      exporthandlers.Handlers
	cancelFunc    context.CancelFunc
	logger        *slog.Logger
}

// NewExportModule creates a new instance of the Export module.
func NewExportModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	sessions exportservice.SessionReader,
	publisher message.Publisher,
	subscriber message.Subscriber,
	router *message.Router,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "export.NewExportModule called")

	var storage exportservice.Storage
	if cfg.StorageEnabled() {
		r2, err := exportstorage.NewR2Storage(ctx, cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create export storage: %w", err)
		}
		storage = r2
	}

	service := exportservice.NewExportService(sessions, storage, publisher, logger, obs.Metrics, tracer)
	module := &Module{
		ExportService: service,
		logger:        logger,
	}

	if storage == nil {
		logger.InfoContext(ctx, "Export storage not configured, finished matches will not be published")
		module.handlers = exporthandlers.NewExportHandlers(service, nil, logger, tracer)
		return module, nil
	}

	queue, err := exportqueue.NewService(ctx, logger, cfg.Postgres.DSN, obs.Metrics, service)
	if err != nil {
		return nil, fmt.Errorf("failed to create export queue: %w", err)
	}
	module.queue = queue
	module.handlers = exporthandlers.NewExportHandlers(service, queue, logger, tracer)

	module.ExportRouter = exportrouter.NewExportRouter(logger, router, subscriber, tracer)
	if err := module.ExportRouter.Configure(ctx, module.handlers); err != nil {
		return nil, fmt.Errorf("failed to configure export router: %w", err)
	}
	return module, nil
}

// SessionRoutes returns the download endpoints to mount on /api/sessions.
func (m *Module) SessionRoutes() func(r chi.Router) {
	return exporthandlers.Routes(m.handlers)
}

// Run starts the export queue, when there is one, and blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting export module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.queue != nil {
		// Jobs keep running past ctx; Close stops the client gracefully.
		if err := m.queue.Start(context.WithoutCancel(ctx)); err != nil {
			m.logger.ErrorContext(ctx, "Failed to start export queue", "error", err)
			return
		}
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Export module goroutine stopped")
}

// Close stops the export module, letting running jobs finish.
func (m *Module) Close() error {
	m.logger.Info("Stopping export module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.queue != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := m.queue.Stop(ctx); err != nil {
			m.logger.Error("Error stopping export queue", "error", err)
			return fmt.Errorf("error stopping export queue: %w", err)
		}
	}

	m.logger.Info("Export module stopped")
	return nil
}
