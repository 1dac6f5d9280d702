package app

import (
	"net/http"
	"time"

	"github.com/Black-And-White-Club/belote-bot/config"
	"github.com/Black-And-White-Club/belote-bot/pkg/httpx"
	"github.com/Black-And-White-Club/belote-bot/pkg/observability"
	"github.com/ThreeDotsLabs/watermill"
	wmmetrics "github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// PoisonTopic receives messages whose handler kept failing after retries.
const PoisonTopic = "belote.poison"

// newMessageRouter builds the watermill router every module registers on.
func newMessageRouter(obs observability.Observability, publisher message.Publisher) (*message.Router, error) {
	wmLogger := watermill.NewSlogLogger(obs.Logger)

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 30 * time.Second}, wmLogger)
	if err != nil {
		return nil, err
	}

	poisonQueue, err := middleware.PoisonQueue(publisher, PoisonTopic)
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		poisonQueue,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     2 * time.Second,
			Multiplier:      2,
			Logger:          wmLogger,
		}.Middleware,
		middleware.Recoverer,
	)

	builder := wmmetrics.NewPrometheusMetricsBuilder(obs.Registry, "", "")
	builder.AddPrometheusRouterMetrics(router)

	return router, nil
}

// newHTTPRouter builds the API router with the shared middleware stack.
// /metrics is served here unless a separate metrics address is configured.
func newHTTPRouter(cfg *config.Config, obs observability.Observability) chi.Router {
	r := chi.NewRouter()
	r.Use(
		chimiddleware.Recoverer,
		httpx.CorrelationIDMiddleware,
		httpx.CORSMiddleware(cfg.HTTP.AllowedOrigins),
		httpx.RateLimitMiddleware(httpx.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)),
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if cfg.Observability.MetricsAddress == "" {
		r.Handle("/metrics", metricsHandler(obs))
	}
	return r
}

func metricsHandler(obs observability.Observability) http.Handler {
	return promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{Registry: obs.Registry})
}
