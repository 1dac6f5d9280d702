//go:build integration

package sessionintegrationtests

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	sessionservice "github.com/Black-And-White-Club/belote-bot/app/modules/session/application"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	"github.com/Black-And-White-Club/belote-bot/integration_tests/testutils"
)

func TestSessionLifecycle(t *testing.T) {
	deps := SetupTestSessionService(t)
	ctx := deps.Ctx

	created, err := deps.Service.CreateSession(ctx, deps.Data.SessionRequest(2000))
	require.NoError(t, err)
	assert.Empty(t, created.Rounds)

	taker, defender := deps.Data.PointRound()
	result, err := deps.Service.AddRound(ctx, created.ID, taker, defender)
	require.NoError(t, err)
	require.Len(t, result.Session.Rounds, 1)
	assert.Positive(t, result.Session.TotalA)
	assert.Equal(t, scoringdomain.NextDealer(created.Dealer), result.Session.Dealer)

	loaded, err := deps.Service.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Session.TotalA, loaded.TotalA)
	assert.Equal(t, result.Session.Rounds[0].RoundRecord, loaded.Rounds[0].RoundRecord)

	undone, err := deps.Service.UndoRound(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, undone.Rounds)
	assert.Equal(t, 0, undone.TotalA)

	_, err = deps.Service.UndoRound(ctx, created.ID)
	assert.ErrorIs(t, err, scoringdomain.ErrNoRounds)

	misdeal, err := deps.Service.RecordMisdeal(ctx, created.ID, scoringdomain.SideB)
	require.NoError(t, err)
	assert.Equal(t, 0, misdeal.Session.TotalA)
	assert.Positive(t, misdeal.Session.TotalB)

	require.NoError(t, deps.Service.DeleteSession(ctx, created.ID))
	_, err = deps.Service.GetSession(ctx, created.ID)
	assert.ErrorIs(t, err, sessiondb.ErrNotFound)
}

func TestConcurrentRoundsAreSerialized(t *testing.T) {
	deps := SetupTestSessionService(t)
	ctx := deps.Ctx

	created, err := deps.Service.CreateSession(ctx, deps.Data.SessionRequest(3000))
	require.NoError(t, err)

	const writers = 5
	errs := make(chan error, writers)
	for range writers {
		taker, defender := deps.Data.PointRound()
		go func() {
			_, err := deps.Service.AddRound(ctx, created.ID, taker, defender)
			errs <- err
		}()
	}
	for range writers {
		require.NoError(t, <-errs)
	}

	loaded, err := deps.Service.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Rounds, writers)
	for i, r := range loaded.Rounds {
		assert.Equal(t, i+1, r.Number)
	}
}

func TestFinishedMatchIsPublished(t *testing.T) {
	deps := SetupTestSessionService(t)
	ctx, cancel := context.WithTimeout(deps.Ctx, 30*time.Second)
	defer cancel()

	messages, err := deps.Env.EventBus.Subscribe(ctx, sessionevents.MatchFinishedV1)
	require.NoError(t, err)

	created, err := deps.Service.CreateSession(ctx, deps.Data.SessionRequest(1000))
	require.NoError(t, err)

	taker, defender := testutils.CapotRound()
	_, err = deps.Service.AddRound(ctx, created.ID, taker, defender)
	require.NoError(t, err)
	result, err := deps.Service.AddRound(ctx, created.ID, taker, defender)
	require.NoError(t, err)
	require.True(t, result.Session.Finished)

	select {
	case msg := <-messages:
		msg.Ack()
		var payload sessionevents.MatchFinishedPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, created.ID, payload.SessionID)
		assert.Equal(t, scoringdomain.SideA, payload.Winner)
		assert.Equal(t, 1000, payload.TotalA)
	case <-ctx.Done():
		t.Fatal("match finished event not received")
	}

	_, err = deps.Service.UndoRound(ctx, created.ID)
	assert.ErrorIs(t, err, sessionservice.ErrFinishedSession)
}

func TestListHistoryAndPurge(t *testing.T) {
	deps := SetupTestSessionService(t)
	ctx := deps.Ctx

	played, err := deps.Service.CreateSession(ctx, deps.Data.SessionRequest(2000))
	require.NoError(t, err)
	taker, defender := deps.Data.PointRound()
	_, err = deps.Service.AddRound(ctx, played.ID, taker, defender)
	require.NoError(t, err)

	stale, err := deps.Service.CreateSession(ctx, deps.Data.SessionRequest(2000))
	require.NoError(t, err)
	_, err = deps.Env.DB.NewUpdate().
		Model((*sessiondb.GameSession)(nil)).
		Set("created_at = ?", time.Now().Add(-96*time.Hour)).
		Where("session_id = ?", stale.ID).
		Exec(ctx)
	require.NoError(t, err)

	history, err := deps.Service.ListHistory(ctx, "", 10)
	require.NoError(t, err)
	ids := make([]uuid.UUID, 0, len(history))
	for _, s := range history {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{played.ID, stale.ID}, ids)

	purged, err := deps.Service.PurgeStale(ctx, 72*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	_, err = deps.Service.GetSession(ctx, stale.ID)
	assert.ErrorIs(t, err, sessiondb.ErrNotFound)
	_, err = deps.Service.GetSession(ctx, played.ID)
	assert.NoError(t, err)
}
