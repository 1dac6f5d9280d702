package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	leaderboardservice "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/infrastructure/handlers"
	leaderboarddb "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/infrastructure/router"
	"github.com/Black-And-White-Club/belote-bot/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	cancelFunc         context.CancelFunc
	logger             *slog.Logger
}

// NewLeaderboardModule creates a new instance of the Leaderboard module.
func NewLeaderboardModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	subscriber message.Subscriber,
	router *message.Router,
	httpRouter chi.Router,
	admin func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule called")

	service := leaderboardservice.NewLeaderboardService(leaderboarddb.NewRepository(), logger, obs.Metrics, tracer, db)
	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, logger, tracer)

	leaderboardRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, subscriber, tracer)
	if err := leaderboardRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	if httpRouter != nil {
		httpRouter.Route("/api/leaderboard", func(r chi.Router) {
			leaderboardhandlers.Routes(r, handlers, admin)
		})
	}

	return &Module{
		LeaderboardService: service,
		LeaderboardRouter:  leaderboardRouter,
		logger:             logger,
	}, nil
}

// Run starts the leaderboard module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close stops the leaderboard module and cleans up resources.
func (m *Module) Close() error {
	m.logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.logger.Info("Leaderboard module stopped")
	return nil
}
