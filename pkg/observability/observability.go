// Package observability bundles the logger, tracer and metrics handed to
// every module.
package observability

import (
	"log/slog"
	"os"

	"github.com/Black-And-White-Club/belote-bot/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "belote-bot"

// Config selects the log format and level.
type Config struct {
	Environment string
	Debug       bool
}

// Observability carries the shared telemetry handles.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
	Metrics  metrics.OperationMetrics
}

// New builds the telemetry handles. Development gets human-readable logs,
// every other environment gets JSON.
func New(cfg Config) Observability {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	logger := slog.New(handler).With(
		slog.String("service", serviceName),
		slog.String("environment", cfg.Environment),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(serviceName),
		Registry: registry,
		Metrics:  metrics.NewPrometheus(registry, "belote"),
	}
}

// NewNoop returns handles that discard everything, for tests and CLI commands.
func NewNoop(logger *slog.Logger) Observability {
	if logger == nil {
		logger = slog.Default()
	}
	return Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(serviceName),
		Registry: prometheus.NewRegistry(),
		Metrics:  metrics.NewNoop(),
	}
}
