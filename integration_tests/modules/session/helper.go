//go:build integration

package sessionintegrationtests

import (
	"context"
	"log"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

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

// TestDeps groups what a session integration test needs.
type TestDeps struct {
	Ctx     context.Context
	Env     *testutils.TestEnvironment
	Service *sessionservice.SessionService
	Data    *testutils.TestDataGenerator
}

// GetTestEnv starts the shared environment on first use.
func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()

	testEnvOnce.Do(func() {
		log.Println("Initializing session test environment...")
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})
	if testEnvErr != nil {
		t.Fatalf("Session test environment initialization failed: %v", testEnvErr)
	}
	return testEnv
}

// SetupTestSessionService resets the database and builds a service on it.
func SetupTestSessionService(t *testing.T) TestDeps {
	t.Helper()
	env := GetTestEnv(t)

	resetCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	service := sessionservice.NewSessionService(
		sessiondb.NewRepository(env.DB),
		env.EventBus,
		env.Logger,
		metrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		env.DB,
	)

	return TestDeps{
		Ctx:     env.Ctx,
		Env:     env,
		Service: service,
		Data:    testutils.NewTestDataGenerator(42),
	}
}
