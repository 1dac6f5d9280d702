//go:build integration

package leaderboardintegrationtests

import (
	"context"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace/noop"

	leaderboardservice "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/application"
	leaderboarddb "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
	"github.com/Black-And-White-Club/belote-bot/integration_tests/testutils"
	"github.com/Black-And-White-Club/belote-bot/pkg/metrics"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// TestDeps groups what a leaderboard integration test needs.
type TestDeps struct {
	Ctx     context.Context
	Env     *testutils.TestEnvironment
	Service leaderboardservice.Service
}

// GetTestEnv starts the shared environment on first use.
func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()

	testEnvOnce.Do(func() {
		log.Println("Initializing leaderboard test environment...")
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})
	if testEnvErr != nil {
		t.Fatalf("Leaderboard test environment initialization failed: %v", testEnvErr)
	}
	return testEnv
}

// SetupTestLeaderboardService resets the database and builds a service on it.
func SetupTestLeaderboardService(t *testing.T) TestDeps {
	t.Helper()
	env := GetTestEnv(t)

	resetCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	service := leaderboardservice.NewLeaderboardService(
		leaderboarddb.NewRepository(),
		env.Logger,
		metrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		env.DB,
	)
	return TestDeps{Ctx: env.Ctx, Env: env, Service: service}
}

// FinishedMatch builds the event of a match between teamA and teamB.
func FinishedMatch(teamA, teamB scoringdomain.Team, winner scoringdomain.Side, finalA, finalB int) sessionevents.MatchFinishedPayload {
	return sessionevents.MatchFinishedPayload{
		SessionID: uuid.New(),
		TeamA:     teamA,
		TeamB:     teamB,
		Winner:    winner,
		BonusMalus: scoringdomain.BonusMalus{
			TeamA:  scoringdomain.TeamTally{Final: finalA},
			TeamB:  scoringdomain.TeamTally{Final: finalB},
			Winner: winner,
		},
		FinishedAt: time.Now().UTC(),
	}
}
