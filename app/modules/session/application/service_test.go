package sessionservice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	"github.com/Black-And-White-Club/belote-bot/pkg/metrics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestService(repo *FakeSessionRepo, pub *FakePublisher) *SessionService {
	svc := NewSessionService(
		repo,
		pub,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC) }
	return svc
}

func createTestSession(t *testing.T, svc *SessionService, threshold int) *SessionSnapshot {
	t.Helper()
	snapshot, err := svc.CreateSession(context.Background(), CreateSessionRequest{
		TeamA:            TeamRequest{Players: [2]string{"alice", "bob"}},
		TeamB:            TeamRequest{Name: "Les Pépites", Players: [2]string{"carol", "dave"}},
		VictoryThreshold: threshold,
	})
	require.NoError(t, err)
	return snapshot
}

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateSessionRequest
		wantErr error
		verify  func(t *testing.T, s *SessionSnapshot)
	}{
		{
			name: "defaults threshold and names team from players",
			req: CreateSessionRequest{
				TeamA:  TeamRequest{Players: [2]string{"alice", "bob"}},
				TeamB:  TeamRequest{Name: "Les Pépites"},
				Dealer: 3,
			},
			verify: func(t *testing.T, s *SessionSnapshot) {
				assert.Equal(t, "alice/bob", s.TeamA.Name)
				assert.Equal(t, "Les Pépites", s.TeamB.Name)
				assert.Equal(t, scoringdomain.DefaultVictoryThreshold, s.VictoryThreshold)
				assert.Equal(t, 3, s.Dealer)
				assert.Equal(t, scoringdomain.Cutter(3), s.Cutter)
				assert.Equal(t, scoringdomain.Opener(3), s.Opener)
				assert.Empty(t, s.Rounds)
			},
		},
		{
			name:    "missing team",
			req:     CreateSessionRequest{TeamA: TeamRequest{Players: [2]string{"alice", ""}}, TeamB: TeamRequest{Name: "b"}},
			wantErr: ErrInvalidTeam,
		},
		{
			name:    "invalid threshold",
			req:     CreateSessionRequest{TeamA: TeamRequest{Name: "a"}, TeamB: TeamRequest{Name: "b"}, VictoryThreshold: 1500},
			wantErr: scoringdomain.ErrInvalidThreshold,
		},
		{
			name:    "invalid dealer",
			req:     CreateSessionRequest{TeamA: TeamRequest{Name: "a"}, TeamB: TeamRequest{Name: "b"}, Dealer: 7},
			wantErr: scoringdomain.ErrInvalidDealer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeSessionRepo()
			pub := NewFakePublisher()
			svc := newTestService(repo, pub)

			snapshot, err := svc.CreateSession(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsValidationError(err))
				assert.NotContains(t, repo.Trace(), "Create")
				return
			}
			require.NoError(t, err)
			tt.verify(t, snapshot)
			assert.Equal(t, []string{"Create"}, repo.Trace())
			assert.Len(t, pub.Messages(sessionevents.SessionUpdatedV1+"."+snapshot.ID.String()), 1)
		})
	}
}

func TestGetSession_NotFound(t *testing.T) {
	svc := newTestService(NewFakeSessionRepo(), NewFakePublisher())

	_, err := svc.GetSession(context.Background(), uuid.New())
	assert.ErrorIs(t, err, sessiondb.ErrNotFound)
	assert.False(t, IsValidationError(err))
}

func TestAddRound(t *testing.T) {
	repo := NewFakeSessionRepo()
	pub := NewFakePublisher()
	svc := newTestService(repo, pub)
	session := createTestSession(t, svc, 2000)

	result, err := svc.AddRound(context.Background(), session.ID,
		scoringdomain.RoundInput{Contract: 90, Achieved: 100},
		scoringdomain.RoundInput{},
	)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Round.Number)
	assert.Equal(t, 190, result.Round.TeamA.Points)
	assert.Equal(t, 60, result.Round.TeamB.Points)
	assert.Equal(t, 190, result.Session.TotalA)
	assert.Equal(t, scoringdomain.NextDealer(0), result.Session.Dealer)
	assert.Nil(t, result.Flash)

	assert.Equal(t, []string{"Create", "GetForUpdate", "Update"}, repo.Trace())

	stored, err := svc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	require.Len(t, stored.Rounds, 1)
	assert.Equal(t, result.Round, stored.Rounds[0])

	updates := pub.Messages(sessionevents.SessionUpdatedV1 + "." + session.ID.String())
	require.Len(t, updates, 2)
	var payload sessionevents.SessionUpdatedPayload
	require.NoError(t, json.Unmarshal(updates[1].Payload, &payload))
	assert.Equal(t, "round_added", payload.Action)
	assert.Len(t, payload.State.Rounds, 1)
	assert.Empty(t, pub.Messages(sessionevents.MatchFinishedV1))
}

func TestAddRound_FlashAlert(t *testing.T) {
	svc := newTestService(NewFakeSessionRepo(), NewFakePublisher())
	session := createTestSession(t, svc, 2000)

	result, err := svc.AddRound(context.Background(), session.ID,
		scoringdomain.RoundInput{Contract: 80, Achieved: 130},
		scoringdomain.RoundInput{},
	)
	require.NoError(t, err)
	require.NotNil(t, result.Flash)
	assert.Equal(t, scoringdomain.AlertWholesale, result.Flash.Alert)
	assert.Equal(t, "alice/bob", result.Flash.Team)
	assert.Equal(t, scoringdomain.FlashDuration.Milliseconds(), result.Flash.DurationMs)
	assert.Equal(t, scoringdomain.AlertWholesale, result.Round.AlertA)
}

func TestAddRound_LaChatteSuppressedByDenylist(t *testing.T) {
	svc := newTestService(NewFakeSessionRepo(), NewFakePublisher())
	session := createTestSession(t, svc, 2000)

	result, err := svc.AddRound(context.Background(), session.ID,
		scoringdomain.RoundInput{Contract: scoringdomain.Generale, Achieved: scoringdomain.FullHand},
		scoringdomain.RoundInput{},
	)
	require.NoError(t, err)
	assert.Nil(t, result.Flash)
}

func TestAddRound_ValidationFailure(t *testing.T) {
	repo := NewFakeSessionRepo()
	svc := newTestService(repo, NewFakePublisher())
	session := createTestSession(t, svc, 2000)

	_, err := svc.AddRound(context.Background(), session.ID,
		scoringdomain.RoundInput{Contract: 90, Achieved: 100},
		scoringdomain.RoundInput{Contract: 100, Achieved: 60},
	)
	require.ErrorIs(t, err, scoringdomain.ErrBothContracts)
	assert.True(t, IsValidationError(err))
	assert.NotContains(t, repo.Trace(), "Update")
}

func TestAddRound_InfrastructureError(t *testing.T) {
	repo := NewFakeSessionRepo()
	svc := newTestService(repo, NewFakePublisher())
	session := createTestSession(t, svc, 2000)
	repo.UpdateFunc = func(ctx context.Context, db bun.IDB, s *sessiondb.GameSession) error {
		return errors.New("connection reset")
	}

	_, err := svc.AddRound(context.Background(), session.ID, scoringdomain.RoundInput{Contract: 80, Achieved: 90}, scoringdomain.RoundInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AddRound")
	assert.False(t, IsValidationError(err))
}

func TestAddRound_FinishesMatchOnce(t *testing.T) {
	pub := NewFakePublisher()
	svc := newTestService(NewFakeSessionRepo(), pub)
	session := createTestSession(t, svc, 1000)

	capot := scoringdomain.RoundInput{Contract: scoringdomain.Capot, Achieved: scoringdomain.FullHand, Label: scoringdomain.LabelCapot}
	_, err := svc.AddRound(context.Background(), session.ID, capot, scoringdomain.RoundInput{})
	require.NoError(t, err)
	result, err := svc.AddRound(context.Background(), session.ID, capot, scoringdomain.RoundInput{})
	require.NoError(t, err)

	assert.True(t, result.Session.Finished)
	assert.Equal(t, scoringdomain.SideA, result.Session.Winner)

	finished := pub.Messages(sessionevents.MatchFinishedV1)
	require.Len(t, finished, 1)
	var payload sessionevents.MatchFinishedPayload
	require.NoError(t, json.Unmarshal(finished[0].Payload, &payload))
	assert.Equal(t, session.ID, payload.SessionID)
	assert.Equal(t, 1000, payload.TotalA)
	assert.Equal(t, scoringdomain.SideA, payload.Winner)
	assert.Equal(t, scoringdomain.WinPoints, payload.BonusMalus.TeamA.Final)

	_, err = svc.AddRound(context.Background(), session.ID, capot, scoringdomain.RoundInput{})
	assert.ErrorIs(t, err, scoringdomain.ErrMatchFinished)

	_, err = svc.UndoRound(context.Background(), session.ID)
	assert.ErrorIs(t, err, ErrFinishedSession)
	assert.Len(t, pub.Messages(sessionevents.MatchFinishedV1), 1)
}

func TestAddRound_PublishFailureDoesNotFailRequest(t *testing.T) {
	pub := NewFakePublisher()
	svc := newTestService(NewFakeSessionRepo(), pub)
	session := createTestSession(t, svc, 2000)
	pub.Err = errors.New("nats down")

	result, err := svc.AddRound(context.Background(), session.ID, scoringdomain.RoundInput{Contract: 80, Achieved: 90}, scoringdomain.RoundInput{})
	require.NoError(t, err)
	assert.Equal(t, 170, result.Session.TotalA)
}

func TestUndoRound(t *testing.T) {
	svc := newTestService(NewFakeSessionRepo(), NewFakePublisher())
	session := createTestSession(t, svc, 2000)
	ctx := context.Background()

	_, err := svc.UndoRound(ctx, session.ID)
	require.ErrorIs(t, err, scoringdomain.ErrNoRounds)

	_, err = svc.AddRound(ctx, session.ID, scoringdomain.RoundInput{Contract: 80, Achieved: 90}, scoringdomain.RoundInput{})
	require.NoError(t, err)

	snapshot, err := svc.UndoRound(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Rounds)
	assert.Equal(t, 0, snapshot.Dealer)
	assert.Equal(t, 0, snapshot.TotalA)
}

func TestRecordMisdealAndSkipTurn(t *testing.T) {
	svc := newTestService(NewFakeSessionRepo(), NewFakePublisher())
	session := createTestSession(t, svc, 2000)
	ctx := context.Background()

	result, err := svc.RecordMisdeal(ctx, session.ID, scoringdomain.SideB)
	require.NoError(t, err)
	assert.Equal(t, scoringdomain.FullHand, result.Session.TotalB)
	assert.Equal(t, scoringdomain.RemarkMisdeal, result.Round.TeamA.Remark)
	assert.Nil(t, result.Flash)

	_, err = svc.RecordMisdeal(ctx, session.ID, scoringdomain.SideNone)
	assert.ErrorIs(t, err, scoringdomain.ErrInvalidSide)

	snapshot, err := svc.SkipTurn(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, snapshot.Rounds, 1)
	assert.Equal(t, scoringdomain.NextDealer(scoringdomain.NextDealer(0)), snapshot.Dealer)
}

func TestOutcome(t *testing.T) {
	svc := newTestService(NewFakeSessionRepo(), NewFakePublisher())
	session := createTestSession(t, svc, 2000)
	ctx := context.Background()

	_, err := svc.AddRound(ctx, session.ID, scoringdomain.RoundInput{}, scoringdomain.RoundInput{Contract: 120, Achieved: 70})
	require.NoError(t, err)

	outcome, err := svc.Outcome(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, outcome.Finished)
	assert.Equal(t, scoringdomain.SideNone, outcome.Winner)
	assert.Equal(t, scoringdomain.SideA, outcome.BonusMalus.Winner)
	assert.Equal(t, 1, outcome.BonusMalus.TeamB.Failures)
	assert.Contains(t, outcome.Breakdown, "alice/bob (Gagnant)")
}

func TestListHistory(t *testing.T) {
	repo := NewFakeSessionRepo()
	svc := newTestService(repo, NewFakePublisher())

	var gotSince *time.Time
	var gotLimit int
	repo.ListHistoryFunc = func(ctx context.Context, db bun.IDB, limit int, since *time.Time) ([]sessiondb.GameSession, error) {
		gotLimit, gotSince = limit, since
		return []sessiondb.GameSession{{
			SessionID:  uuid.New(),
			TeamAName:  "alice/bob",
			TeamBName:  "carol/dave",
			TeamATotal: 2010,
			TeamBTotal: 1400,
			IsFinished: true,
			Winner:     "A",
			Rounds:     make([]scoringdomain.RoundRecord, 12),
		}}, nil
	}

	summaries, err := svc.ListHistory(context.Background(), "2 days ago", 0)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 12, summaries[0].Rounds)
	assert.Equal(t, scoringdomain.SideA, summaries[0].Winner)
	assert.Equal(t, 0, gotLimit)
	require.NotNil(t, gotSince)
	assert.WithinDuration(t, svc.now().Add(-48*time.Hour), *gotSince, time.Minute)

	_, err = svc.ListHistory(context.Background(), "2026-03-01", 10)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *gotSince)

	_, err = svc.ListHistory(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Nil(t, gotSince)

	_, err = svc.ListHistory(context.Background(), "whenever", 10)
	assert.ErrorIs(t, err, ErrInvalidSince)
}

func TestDeleteSession(t *testing.T) {
	svc := newTestService(NewFakeSessionRepo(), NewFakePublisher())
	session := createTestSession(t, svc, 2000)

	require.NoError(t, svc.DeleteSession(context.Background(), session.ID))
	assert.ErrorIs(t, svc.DeleteSession(context.Background(), session.ID), sessiondb.ErrNotFound)
}

func TestPurgeStale(t *testing.T) {
	repo := NewFakeSessionRepo()
	svc := newTestService(repo, nil)

	var cutoff time.Time
	repo.DeleteStaleUnstartedFunc = func(ctx context.Context, db bun.IDB, olderThan time.Time) (int, error) {
		cutoff = olderThan
		return 3, nil
	}

	n, err := svc.PurgeStale(context.Background(), 72*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, svc.now().Add(-72*time.Hour), cutoff)
}

func TestWithTelemetry_RecoversPanic(t *testing.T) {
	repo := NewFakeSessionRepo()
	svc := newTestService(repo, nil)
	repo.GetByIDFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*sessiondb.GameSession, error) {
		panic("boom")
	}

	_, err := svc.GetSession(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in GetSession")
}
