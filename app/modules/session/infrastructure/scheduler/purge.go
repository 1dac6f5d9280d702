package sessionscheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/belote-bot/pkg/attr"
	"github.com/go-co-op/gocron/v2"
)

// Purger deletes sessions that never got a round.
type Purger interface {
	PurgeStale(ctx context.Context, olderThan time.Duration) (int, error)
}

// PurgeScheduler runs the stale session purge on a fixed interval.
type PurgeScheduler struct {
	scheduler gocron.Scheduler
	purger    Purger
	interval  time.Duration
	maxAge    time.Duration
	logger    *slog.Logger
}

// NewPurgeScheduler creates a scheduler; call Start to begin running jobs.
func NewPurgeScheduler(purger Purger, interval, maxAge time.Duration, logger *slog.Logger) (*PurgeScheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &PurgeScheduler{
		scheduler: scheduler,
		purger:    purger,
		interval:  interval,
		maxAge:    maxAge,
		logger:    logger,
	}, nil
}

// Start registers the purge job and starts the scheduler. The job stops
// doing work once ctx is cancelled.
func (p *PurgeScheduler) Start(ctx context.Context) error {
	_, err := p.scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(func() { p.RunOnce(ctx) }),
		gocron.WithName("purge-stale-sessions"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule purge job: %w", err)
	}

	p.scheduler.Start()
	p.logger.InfoContext(ctx, "Stale session purge scheduled",
		attr.Duration("interval", p.interval),
		attr.Duration("max_age", p.maxAge),
	)
	return nil
}

// RunOnce purges stale sessions now.
func (p *PurgeScheduler) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	n, err := p.purger.PurgeStale(ctx, p.maxAge)
	if err != nil {
		p.logger.ErrorContext(ctx, "Stale session purge failed", attr.Error(err))
		return
	}
	if n > 0 {
		p.logger.InfoContext(ctx, "Purged stale sessions", attr.Int("count", n))
	}
}

// Shutdown stops the scheduler and waits for a running purge to finish.
func (p *PurgeScheduler) Shutdown() error {
	return p.scheduler.Shutdown()
}
