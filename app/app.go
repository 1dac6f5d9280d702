package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/belote-bot/app/modules/export"
	"github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard"
	"github.com/Black-And-White-Club/belote-bot/app/modules/session"
	"github.com/Black-And-White-Club/belote-bot/config"
	"github.com/Black-And-White-Club/belote-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/belote-bot/pkg/httpx"
	"github.com/Black-And-White-Club/belote-bot/pkg/jwt"
	"github.com/Black-And-White-Club/belote-bot/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// App holds the shared infrastructure and the modules built on it.
type App struct {
	Config            *config.Config
	Observability     observability.Observability
	DB                *bun.DB
	EventBus          eventbus.EventBus
	Router            *message.Router
	HTTPRouter        chi.Router
	SessionModule     *session.Module
	LeaderboardModule *leaderboard.Module
	ExportModule      *export.Module
}

// NewApp connects the infrastructure and creates every module.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	logger := obs.Logger

	db := OpenDB(cfg.Postgres.DSN)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.InfoContext(ctx, "Database connection established")

	bus, err := eventbus.New(cfg.NATS.URL, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      bus,
	}

	if err := app.initModules(ctx); err != nil {
		if closeErr := app.Close(); closeErr != nil {
			logger.ErrorContext(ctx, "Failed to release resources", "error", closeErr)
		}
		return nil, err
	}
	return app, nil
}

func (app *App) initModules(ctx context.Context) error {
	cfg, obs := app.Config, app.Observability

	router, err := newMessageRouter(obs, app.EventBus)
	if err != nil {
		return fmt.Errorf("failed to create message router: %w", err)
	}
	app.Router = router
	app.HTTPRouter = newHTTPRouter(cfg, obs)

	admin := httpx.RequireRole(jwt.NewService(cfg.JWT.Secret), jwt.RoleAdmin)

	app.SessionModule, err = session.NewSessionModule(ctx, cfg, obs, app.DB, app.EventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize session module: %w", err)
	}

	app.LeaderboardModule, err = leaderboard.NewLeaderboardModule(ctx, obs, app.DB, app.EventBus, router, app.HTTPRouter, admin)
	if err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}

	app.ExportModule, err = export.NewExportModule(ctx, cfg, obs, app.SessionModule.SessionService, app.EventBus, app.EventBus, router)
	if err != nil {
		return fmt.Errorf("failed to initialize export module: %w", err)
	}

	app.SessionModule.MountRoutes(app.HTTPRouter, admin, app.ExportModule.SessionRoutes())
	return nil
}

// Close releases the modules first, then the router, bus and database.
func (app *App) Close() error {
	var errs []error
	var closers []interface{ Close() error }
	if app.ExportModule != nil {
		closers = append(closers, app.ExportModule)
	}
	if app.LeaderboardModule != nil {
		closers = append(closers, app.LeaderboardModule)
	}
	if app.SessionModule != nil {
		closers = append(closers, app.SessionModule)
	}
	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.Router != nil {
		if err := app.Router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close message router: %w", err))
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
