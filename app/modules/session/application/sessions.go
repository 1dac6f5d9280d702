package sessionservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	"github.com/Black-And-White-Club/belote-bot/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// transition is a pure state change applied under the session row lock.
// It returns the appended record, if any.
type transition func(m scoringdomain.MatchState) (scoringdomain.MatchState, *scoringdomain.RoundRecord, error)

// mutation is the committed outcome of a transition.
type mutation struct {
	row       *sessiondb.GameSession
	record    *scoringdomain.RoundRecord
	justEnded bool
}

// CreateSession starts a new match.
func (s *SessionService) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionSnapshot, error) {
	createTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*SessionSnapshot, error], error) {
		return s.createSessionLogic(ctx, db, req)
	}

	snapshot, err := unwrap(withTelemetry(s, ctx, "CreateSession", "new", func(ctx context.Context) (results.OperationResult[*SessionSnapshot, error], error) {
		return runInTx(s, ctx, createTx)
	}))
	if err != nil {
		return nil, err
	}
	s.publishSessionUpdated(ctx, "created", snapshot.ID, snapshot.State, nil)
	return snapshot, nil
}

func (s *SessionService) createSessionLogic(ctx context.Context, db bun.IDB, req CreateSessionRequest) (results.OperationResult[*SessionSnapshot, error], error) {
	teamA, err := req.TeamA.team()
	if err != nil {
		return results.FailureResult[*SessionSnapshot, error](fmt.Errorf("team A: %w", err)), nil
	}
	teamB, err := req.TeamB.team()
	if err != nil {
		return results.FailureResult[*SessionSnapshot, error](fmt.Errorf("team B: %w", err)), nil
	}

	threshold := req.VictoryThreshold
	if threshold == 0 {
		threshold = scoringdomain.DefaultVictoryThreshold
	}

	state, err := scoringdomain.NewMatch(teamA, teamB, threshold, req.Dealer)
	if err != nil {
		return results.FailureResult[*SessionSnapshot, error](err), nil
	}

	row := &sessiondb.GameSession{SessionID: uuid.New()}
	row.Apply(state)
	if err := s.repo.Create(ctx, db, row); err != nil {
		return results.OperationResult[*SessionSnapshot, error]{}, fmt.Errorf("failed to create session: %w", err)
	}

	return results.SuccessResult[*SessionSnapshot, error](newSnapshot(row)), nil
}

// GetSession loads a session with its rounds, alerts and totals.
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*SessionSnapshot, error) {
	getTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*SessionSnapshot, error], error) {
		row, err := s.repo.GetByID(ctx, db, id)
		if err != nil {
			if errors.Is(err, sessiondb.ErrNotFound) {
				return results.FailureResult[*SessionSnapshot, error](err), nil
			}
			return results.OperationResult[*SessionSnapshot, error]{}, fmt.Errorf("failed to get session: %w", err)
		}
		return results.SuccessResult[*SessionSnapshot, error](newSnapshot(row)), nil
	}

	return unwrap(withTelemetry(s, ctx, "GetSession", id.String(), func(ctx context.Context) (results.OperationResult[*SessionSnapshot, error], error) {
		return runInTx(s, ctx, getTx)
	}))
}

// AddRound scores a round and appends it to the session.
func (s *SessionService) AddRound(ctx context.Context, id uuid.UUID, teamA, teamB scoringdomain.RoundInput) (*RoundResult, error) {
	mut, err := s.mutate(ctx, "AddRound", id, func(m scoringdomain.MatchState) (scoringdomain.MatchState, *scoringdomain.RoundRecord, error) {
		next, record, err := scoringdomain.AddRound(m, teamA, teamB)
		return next, &record, err
	})
	if err != nil {
		return nil, err
	}
	return s.finishRound(ctx, "round_added", mut, true), nil
}

// RecordMisdeal awards a full hand to beneficiary.
func (s *SessionService) RecordMisdeal(ctx context.Context, id uuid.UUID, beneficiary scoringdomain.Side) (*RoundResult, error) {
	mut, err := s.mutate(ctx, "RecordMisdeal", id, func(m scoringdomain.MatchState) (scoringdomain.MatchState, *scoringdomain.RoundRecord, error) {
		next, record, err := scoringdomain.RecordMisdeal(m, beneficiary)
		return next, &record, err
	})
	if err != nil {
		return nil, err
	}
	return s.finishRound(ctx, "misdeal", mut, false), nil
}

// UndoRound removes the last round of an unfinished session.
func (s *SessionService) UndoRound(ctx context.Context, id uuid.UUID) (*SessionSnapshot, error) {
	mut, err := s.mutate(ctx, "UndoRound", id, func(m scoringdomain.MatchState) (scoringdomain.MatchState, *scoringdomain.RoundRecord, error) {
		if m.IsFinished() {
			return m, nil, ErrFinishedSession
		}
		next, _, err := scoringdomain.UndoLastRound(m)
		return next, nil, err
	})
	if err != nil {
		return nil, err
	}
	snapshot := newSnapshot(mut.row)
	s.publishSessionUpdated(ctx, "round_undone", snapshot.ID, snapshot.State, nil)
	return snapshot, nil
}

// SkipTurn passes the deal without scoring.
func (s *SessionService) SkipTurn(ctx context.Context, id uuid.UUID) (*SessionSnapshot, error) {
	mut, err := s.mutate(ctx, "SkipTurn", id, func(m scoringdomain.MatchState) (scoringdomain.MatchState, *scoringdomain.RoundRecord, error) {
		next, err := scoringdomain.SkipTurn(m)
		return next, nil, err
	})
	if err != nil {
		return nil, err
	}
	snapshot := newSnapshot(mut.row)
	s.publishSessionUpdated(ctx, "turn_skipped", snapshot.ID, snapshot.State, nil)
	return snapshot, nil
}

// mutate loads the session under a row lock, applies fn and writes the new
// state back in the same transaction.
func (s *SessionService) mutate(ctx context.Context, operationName string, id uuid.UUID, fn transition) (*mutation, error) {
	mutateTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*mutation, error], error) {
		return s.applyTransitionLogic(ctx, db, id, fn)
	}

	return unwrap(withTelemetry(s, ctx, operationName, id.String(), func(ctx context.Context) (results.OperationResult[*mutation, error], error) {
		return runInTx(s, ctx, mutateTx)
	}))
}

func (s *SessionService) applyTransitionLogic(ctx context.Context, db bun.IDB, id uuid.UUID, fn transition) (results.OperationResult[*mutation, error], error) {
	row, err := s.repo.GetForUpdate(ctx, db, id)
	if err != nil {
		if errors.Is(err, sessiondb.ErrNotFound) {
			return results.FailureResult[*mutation, error](err), nil
		}
		return results.OperationResult[*mutation, error]{}, fmt.Errorf("failed to load session: %w", err)
	}

	before := row.State()
	next, record, err := fn(before)
	if err != nil {
		return results.FailureResult[*mutation, error](err), nil
	}

	row.Apply(next)
	if err := s.repo.Update(ctx, db, row); err != nil {
		return results.OperationResult[*mutation, error]{}, fmt.Errorf("failed to save session: %w", err)
	}

	return results.SuccessResult[*mutation, error](&mutation{
		row:       row,
		record:    record,
		justEnded: !before.IsFinished() && next.IsFinished(),
	}), nil
}

// finishRound builds the response of a committed round and publishes the
// resulting events.
func (s *SessionService) finishRound(ctx context.Context, action string, mut *mutation, withFlash bool) *RoundResult {
	snapshot := newSnapshot(mut.row)
	result := &RoundResult{Session: snapshot}
	if mut.record != nil {
		result.Round = newRoundView(*mut.record)
		if withFlash {
			result.Flash = flashAlert(snapshot.State, *mut.record)
		}
	}

	s.publishSessionUpdated(ctx, action, snapshot.ID, snapshot.State, result.Flash)
	if mut.justEnded {
		s.publishMatchFinished(ctx, snapshot)
	}
	return result
}

// Outcome previews the bonus and malus of a session.
func (s *SessionService) Outcome(ctx context.Context, id uuid.UUID) (*OutcomeView, error) {
	outcomeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*OutcomeView, error], error) {
		row, err := s.repo.GetByID(ctx, db, id)
		if err != nil {
			if errors.Is(err, sessiondb.ErrNotFound) {
				return results.FailureResult[*OutcomeView, error](err), nil
			}
			return results.OperationResult[*OutcomeView, error]{}, fmt.Errorf("failed to get session: %w", err)
		}
		state := row.State()
		bm := state.Outcome()
		return results.SuccessResult[*OutcomeView, error](&OutcomeView{
			SessionID:  row.SessionID,
			Finished:   state.IsFinished(),
			Winner:     state.Winner(),
			BonusMalus: bm,
			Breakdown:  scoringdomain.FormatBreakdown(bm, state.TeamA.Name, state.TeamB.Name),
		}), nil
	}

	return unwrap(withTelemetry(s, ctx, "Outcome", id.String(), func(ctx context.Context) (results.OperationResult[*OutcomeView, error], error) {
		return runInTx(s, ctx, outcomeTx)
	}))
}

// ListHistory returns recent sessions, optionally since a date or a phrase
// such as "3 days ago".
func (s *SessionService) ListHistory(ctx context.Context, since string, limit int) ([]SessionSummary, error) {
	historyTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[[]SessionSummary, error], error) {
		from, err := parseSince(since, s.now())
		if err != nil {
			return results.FailureResult[[]SessionSummary, error](err), nil
		}
		rows, err := s.repo.ListHistory(ctx, db, limit, from)
		if err != nil {
			return results.OperationResult[[]SessionSummary, error]{}, fmt.Errorf("failed to list history: %w", err)
		}
		summaries := make([]SessionSummary, 0, len(rows))
		for _, row := range rows {
			summaries = append(summaries, newSummary(row))
		}
		return results.SuccessResult[[]SessionSummary, error](summaries), nil
	}

	return unwrap(withTelemetry(s, ctx, "ListHistory", since, func(ctx context.Context) (results.OperationResult[[]SessionSummary, error], error) {
		return runInTx(s, ctx, historyTx)
	}))
}

// DeleteSession removes a session.
func (s *SessionService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	deleteTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		if err := s.repo.Delete(ctx, db, id); err != nil {
			if errors.Is(err, sessiondb.ErrNotFound) {
				return results.FailureResult[bool, error](err), nil
			}
			return results.OperationResult[bool, error]{}, fmt.Errorf("failed to delete session: %w", err)
		}
		return results.SuccessResult[bool, error](true), nil
	}

	_, err := unwrap(withTelemetry(s, ctx, "DeleteSession", id.String(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, deleteTx)
	}))
	return err
}

// PurgeStale deletes sessions that never received a round and are older than olderThan.
func (s *SessionService) PurgeStale(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := s.now().Add(-olderThan)
	purgeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
		n, err := s.repo.DeleteStaleUnstarted(ctx, db, cutoff)
		if err != nil {
			return results.OperationResult[int, error]{}, fmt.Errorf("failed to purge sessions: %w", err)
		}
		return results.SuccessResult[int, error](n), nil
	}

	return unwrap(withTelemetry(s, ctx, "PurgeStale", cutoff.Format(time.RFC3339), func(ctx context.Context) (results.OperationResult[int, error], error) {
		return runInTx(s, ctx, purgeTx)
	}))
}
