package sessionservice

import (
	"context"
	"time"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	"github.com/google/uuid"
)

// Service defines the contract for game session operations.
type Service interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionSnapshot, error)
	GetSession(ctx context.Context, id uuid.UUID) (*SessionSnapshot, error)
	AddRound(ctx context.Context, id uuid.UUID, teamA, teamB scoringdomain.RoundInput) (*RoundResult, error)
	UndoRound(ctx context.Context, id uuid.UUID) (*SessionSnapshot, error)
	RecordMisdeal(ctx context.Context, id uuid.UUID, beneficiary scoringdomain.Side) (*RoundResult, error)
	SkipTurn(ctx context.Context, id uuid.UUID) (*SessionSnapshot, error)
	Outcome(ctx context.Context, id uuid.UUID) (*OutcomeView, error)
	ListHistory(ctx context.Context, since string, limit int) ([]SessionSummary, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	PurgeStale(ctx context.Context, olderThan time.Duration) (int, error)
}
