package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	sessionservice "github.com/Black-And-White-Club/belote-bot/app/modules/session/application"
	sessionhandlers "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/handlers"
	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	sessionscheduler "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/scheduler"
	"github.com/Black-And-White-Club/belote-bot/config"
	"github.com/Black-And-White-Club/belote-bot/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the game session module.
type Module struct {
	SessionService sessionservice.Service
	scheduler      *sessionscheduler.PurgeScheduler
	handlers       sessionhandlers.Handlers
	cancelFunc     context.CancelFunc
	logger         *slog.Logger
}

// NewSessionModule creates the session module.
func NewSessionModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	publisher message.Publisher,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "session.NewSessionModule called")

	service := sessionservice.NewSessionService(sessiondb.NewRepository(db), publisher, logger, obs.Metrics, tracer, db)

	scheduler, err := sessionscheduler.NewPurgeScheduler(service, cfg.Scheduler.PurgeInterval, cfg.Scheduler.StaleSessionAge, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create purge scheduler: %w", err)
	}

	return &Module{
		SessionService: service,
		scheduler:      scheduler,
		handlers:       sessionhandlers.NewSessionHandlers(service, logger, tracer),
		logger:         logger,
	}, nil
}

// MountRoutes serves the session API under /api/sessions. extraRoutes lets
// other modules hang per-session endpoints off the same subtree.
func (m *Module) MountRoutes(httpRouter chi.Router, admin func(http.Handler) http.Handler, extraRoutes ...func(r chi.Router)) {
	httpRouter.Route("/api/sessions", func(r chi.Router) {
		sessionhandlers.Routes(r, m.handlers, admin)
		for _, mount := range extraRoutes {
			mount(r)
		}
	})
}

// Run starts the purge scheduler and blocks until ctx is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting session module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.scheduler.Start(ctx); err != nil {
		m.logger.ErrorContext(ctx, "Failed to start purge scheduler", "error", err)
		return
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Session module goroutine stopped")
}

// Close stops the session module.
func (m *Module) Close() error {
	m.logger.Info("Stopping session module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if err := m.scheduler.Shutdown(); err != nil {
		m.logger.Error("Error stopping purge scheduler", "error", err)
		return fmt.Errorf("error stopping scheduler: %w", err)
	}

	m.logger.Info("Session module stopped")
	return nil
}
