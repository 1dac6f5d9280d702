//go:build integration

package testutils

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/belote-bot/app"
	exportqueue "github.com/Black-And-White-Club/belote-bot/app/modules/export/infrastructure/queue"
	"github.com/Black-And-White-Club/belote-bot/config"
	"github.com/Black-And-White-Club/belote-bot/integration_tests/containers"
	"github.com/Black-And-White-Club/belote-bot/pkg/eventbus"
)

// TestEnvironment holds the containers and connections shared by the
// integration tests of one package.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer *nats.NATSContainer
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Config        *config.Config
	Logger        *slog.Logger
}

// NewTestEnvironment starts Postgres and NATS, applies every migration and
// connects the event bus.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	if err := env.setupContainers(ctx); err != nil {
		cancel()
		return nil, err
	}
	return env, nil
}

func (env *TestEnvironment) setupContainers(ctx context.Context) error {
	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.terminate(ctx)
		return fmt.Errorf("failed to setup nats container: %w", err)
	}
	env.NatsContainer = natsContainer

	env.Config = &config.Config{
		Postgres: config.PostgresConfig{DSN: pgConnStr},
		NATS:     config.NATSConfig{URL: natsURL},
	}

	env.DB = app.OpenDB(pgConnStr)
	if err := env.DB.PingContext(ctx); err != nil {
		env.terminate(ctx)
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := runMigrations(ctx, env.DB, pgConnStr); err != nil {
		env.terminate(ctx)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	bus, err := eventbus.NewNATS(natsURL, env.Logger)
	if err != nil {
		env.terminate(ctx)
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	env.EventBus = bus

	return nil
}

// Reset truncates every table between tests.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	return CleanupDatabase(ctx, env.DB)
}

// Cleanup closes connections and terminates the containers.
func (env *TestEnvironment) Cleanup() {
	if env.EventBus != nil {
		if closer, ok := env.EventBus.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Printf("Error closing event bus: %v", err)
			}
		}
	}
	env.terminate(env.Ctx)
	env.CancelContext()
}

func (env *TestEnvironment) terminate(ctx context.Context) {
	if env.DB != nil {
		env.DB.Close()
	}
	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate postgres container: %v", err)
		}
	}
}

// runMigrations applies the river schema, then the module migrations.
func runMigrations(ctx context.Context, db *bun.DB, pgConnStr string) error {
	pool, err := exportqueue.NewPool(ctx, pgConnStr)
	if err != nil {
		return err
	}
	defer pool.Close()

	if _, err := exportqueue.Migrate(ctx, pool); err != nil {
		return err
	}

	if err := app.Migrate(ctx, db); err != nil {
		return err
	}
	log.Println("All migrations ran successfully")
	return nil
}
