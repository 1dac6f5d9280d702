package sessiondb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for game session persistence.
type Repository interface {
	// Create inserts a new session.
	Create(ctx context.Context, db bun.IDB, session *GameSession) error

	// GetByID retrieves a session by its ID.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*GameSession, error)

	// GetForUpdate retrieves a session and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*GameSession, error)

	// Update writes back a session's state.
	Update(ctx context.Context, db bun.IDB, session *GameSession) error

	// Delete removes a session.
	Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error

	// ListHistory returns started or finished sessions, newest first.
	ListHistory(ctx context.Context, db bun.IDB, limit int, since *time.Time) ([]GameSession, error)

	// DeleteStaleUnstarted removes sessions without rounds created before olderThan.
	DeleteStaleUnstarted(ctx context.Context, db bun.IDB, olderThan time.Time) (int, error)
}
