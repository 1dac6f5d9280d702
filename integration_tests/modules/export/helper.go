//go:build integration

package exportintegrationtests

import (
	"context"
	"log"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	exportservice "github.com/Black-And-White-Club/belote-bot/app/modules/export/application"
	exportqueue "github.com/Black-And-White-Club/belote-bot/app/modules/export/infrastructure/queue"
	sessionservice "github.com/Black-And-White-Club/belote-bot/app/modules/session/application"
	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	"github.com/Black-And-White-Club/belote-bot/integration_tests/testutils"
	"github.com/Black-And-White-Club/belote-bot/pkg/metrics"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// MemoryStorage keeps uploaded objects in memory.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *MemoryStorage) Upload(_ context.Context, key, _ string, body []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = body
	return "https://files.example.test/" + key, nil
}

// Keys returns the number of stored objects.
func (m *MemoryStorage) Keys() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// TestDeps groups what an export integration test needs.
type TestDeps struct {
	Ctx      context.Context
	Env      *testutils.TestEnvironment
	Sessions *sessionservice.SessionService
	Exports  *exportservice.ExportService
	Storage  *MemoryStorage
	Queue    *exportqueue.Service
	Data     *testutils.TestDataGenerator
}

// GetTestEnv starts the shared environment on first use.
func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()

	testEnvOnce.Do(func() {
		log.Println("Initializing export test environment...")
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})
	if testEnvErr != nil {
		t.Fatalf("Export test environment initialization failed: %v", testEnvErr)
	}
	return testEnv
}

// SetupTestExportService resets the database and wires the session service,
// the export service and the river queue on it.
func SetupTestExportService(t *testing.T) TestDeps {
	t.Helper()
	env := GetTestEnv(t)

	resetCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	tracer := noop.NewTracerProvider().Tracer("test")
	sessions := sessionservice.NewSessionService(sessiondb.NewRepository(env.DB), nil, env.Logger, metrics.NewNoop(), tracer, env.DB)
	storage := &MemoryStorage{}
	exports := exportservice.NewExportService(sessions, storage, env.EventBus, env.Logger, metrics.NewNoop(), tracer)

	queue, err := exportqueue.NewService(env.Ctx, env.Logger, env.Config.Postgres.DSN, metrics.NewNoop(), exports)
	if err != nil {
		t.Fatalf("Failed to create export queue: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queue.Stop(stopCtx); err != nil {
			t.Logf("Failed to stop export queue: %v", err)
		}
	})

	return TestDeps{
		Ctx:      env.Ctx,
		Env:      env,
		Sessions: sessions,
		Exports:  exports,
		Storage:  storage,
		Queue:    queue,
		Data:     testutils.NewTestDataGenerator(7),
	}
}
