package sessionhandlers

import (
	"context"
	"time"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	sessionservice "github.com/Black-And-White-Club/belote-bot/app/modules/session/application"
	"github.com/google/uuid"
)

// FakeService is a programmable stand-in for sessionservice.Service.
type FakeService struct {
	CreateSessionFunc func(ctx context.Context, req sessionservice.CreateSessionRequest) (*sessionservice.SessionSnapshot, error)
	GetSessionFunc    func(ctx context.Context, id uuid.UUID) (*sessionservice.SessionSnapshot, error)
	AddRoundFunc      func(ctx context.Context, id uuid.UUID, a, b scoringdomain.RoundInput) (*sessionservice.RoundResult, error)
	UndoRoundFunc     func(ctx context.Context, id uuid.UUID) (*sessionservice.SessionSnapshot, error)
	RecordMisdealFunc func(ctx context.Context, id uuid.UUID, side scoringdomain.Side) (*sessionservice.RoundResult, error)
	SkipTurnFunc      func(ctx context.Context, id uuid.UUID) (*sessionservice.SessionSnapshot, error)
	OutcomeFunc       func(ctx context.Context, id uuid.UUID) (*sessionservice.OutcomeView, error)
	ListHistoryFunc   func(ctx context.Context, since string, limit int) ([]sessionservice.SessionSummary, error)
	DeleteSessionFunc func(ctx context.Context, id uuid.UUID) error
	PurgeStaleFunc    func(ctx context.Context, olderThan time.Duration) (int, error)
}

var _ sessionservice.Service = (*FakeService)(nil)

func (f *FakeService) CreateSession(ctx context.Context, req sessionservice.CreateSessionRequest) (*sessionservice.SessionSnapshot, error) {
	if f.CreateSessionFunc != nil {
		return f.CreateSessionFunc(ctx, req)
	}
	return &sessionservice.SessionSnapshot{ID: uuid.New()}, nil
}

func (f *FakeService) GetSession(ctx context.Context, id uuid.UUID) (*sessionservice.SessionSnapshot, error) {
	if f.GetSessionFunc != nil {
		return f.GetSessionFunc(ctx, id)
	}
	return &sessionservice.SessionSnapshot{ID: id}, nil
}

func (f *FakeService) AddRound(ctx context.Context, id uuid.UUID, a, b scoringdomain.RoundInput) (*sessionservice.RoundResult, error) {
	if f.AddRoundFunc != nil {
		return f.AddRoundFunc(ctx, id, a, b)
	}
	return &sessionservice.RoundResult{Session: &sessionservice.SessionSnapshot{ID: id}}, nil
}

func (f *FakeService) UndoRound(ctx context.Context, id uuid.UUID) (*sessionservice.SessionSnapshot, error) {
	if f.UndoRoundFunc != nil {
		return f.UndoRoundFunc(ctx, id)
	}
	return &sessionservice.SessionSnapshot{ID: id}, nil
}

func (f *FakeService) RecordMisdeal(ctx context.Context, id uuid.UUID, side scoringdomain.Side) (*sessionservice.RoundResult, error) {
	if f.RecordMisdealFunc != nil {
		return f.RecordMisdealFunc(ctx, id, side)
	}
	return &sessionservice.RoundResult{Session: &sessionservice.SessionSnapshot{ID: id}}, nil
}

func (f *FakeService) SkipTurn(ctx context.Context, id uuid.UUID) (*sessionservice.SessionSnapshot, error) {
	if f.SkipTurnFunc != nil {
		return f.SkipTurnFunc(ctx, id)
	}
	return &sessionservice.SessionSnapshot{ID: id}, nil
}

func (f *FakeService) Outcome(ctx context.Context, id uuid.UUID) (*sessionservice.OutcomeView, error) {
	if f.OutcomeFunc != nil {
		return f.OutcomeFunc(ctx, id)
	}
	return &sessionservice.OutcomeView{SessionID: id}, nil
}

func (f *FakeService) ListHistory(ctx context.Context, since string, limit int) ([]sessionservice.SessionSummary, error) {
	if f.ListHistoryFunc != nil {
		return f.ListHistoryFunc(ctx, since, limit)
	}
	return nil, nil
}

func (f *FakeService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if f.DeleteSessionFunc != nil {
		return f.DeleteSessionFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) PurgeStale(ctx context.Context, olderThan time.Duration) (int, error) {
	if f.PurgeStaleFunc != nil {
		return f.PurgeStaleFunc(ctx, olderThan)
	}
	return 0, nil
}
