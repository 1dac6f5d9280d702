package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const shutdownTimeout = 15 * time.Second

// Run starts the modules, the message router and the HTTP listeners, and
// blocks until ctx is cancelled or one of them fails.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(3)
	go app.SessionModule.Run(ctx, &wg)
	go app.LeaderboardModule.Run(ctx, &wg)
	go app.ExportModule.Run(ctx, &wg)

	errCh := make(chan error, 3)
	go func() {
		if err := app.Router.Run(ctx); err != nil {
			errCh <- fmt.Errorf("message router stopped: %w", err)
		}
	}()

	servers := []*http.Server{{
		Addr:              app.Config.HTTP.Address,
		Handler:           app.HTTPRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if addr := app.Config.Observability.MetricsAddress; addr != "" {
		servers = append(servers, &http.Server{
			Addr:              addr,
			Handler:           metricsHandler(app.Observability),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}
	for _, srv := range servers {
		go func() {
			logger.InfoContext(ctx, "HTTP server listening", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http server on %s: %w", srv.Addr, err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	case runErr = <-errCh:
		logger.Error("Component failed, shutting down", "error", runErr)
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "address", srv.Addr, "error", err)
		}
	}

	wg.Wait()
	return runErr
}
