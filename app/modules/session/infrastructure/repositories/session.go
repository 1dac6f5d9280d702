package sessiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a session is not found.
var ErrNotFound = errors.New("session not found")

// DefaultHistoryLimit caps ListHistory when no limit is given.
const DefaultHistoryLimit = 50

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new session repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Create inserts a new session.
func (r *Impl) Create(ctx context.Context, db bun.IDB, session *GameSession) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	if _, err := db.NewInsert().Model(session).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its ID.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*GameSession, error) {
	return r.get(ctx, r.resolveDB(db), id, false)
}

// GetForUpdate retrieves a session with a row lock.
func (r *Impl) GetForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*GameSession, error) {
	return r.get(ctx, r.resolveDB(db), id, true)
}

func (r *Impl) get(ctx context.Context, db bun.IDB, id uuid.UUID, lock bool) (*GameSession, error) {
	session := new(GameSession)
	q := db.NewSelect().
		Model(session).
		Where("session_id = ?", id)
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// Update writes back a session's state.
func (r *Impl) Update(ctx context.Context, db bun.IDB, session *GameSession) error {
	db = r.resolveDB(db)
	session.UpdatedAt = time.Now().UTC()
	result, err := db.NewUpdate().
		Model(session).
		Column("team_a_name", "team_b_name", "team_a_players", "team_b_players",
			"dealer", "victory_threshold", "rounds", "team_a_total", "team_b_total",
			"is_finished", "winner", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*GameSession)(nil)).
		Where("session_id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListHistory returns started or finished sessions, newest first.
func (r *Impl) ListHistory(ctx context.Context, db bun.IDB, limit int, since *time.Time) ([]GameSession, error) {
	db = r.resolveDB(db)
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var sessions []GameSession
	q := db.NewSelect().
		Model(&sessions).
		Where("is_finished OR jsonb_array_length(rounds) > 0").
		OrderExpr("updated_at DESC").
		Limit(limit)
	if since != nil {
		q = q.Where("updated_at >= ?", *since)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list session history: %w", err)
	}
	return sessions, nil
}

// DeleteStaleUnstarted removes sessions without rounds created before olderThan.
func (r *Impl) DeleteStaleUnstarted(ctx context.Context, db bun.IDB, olderThan time.Time) (int, error) {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*GameSession)(nil)).
		Where("jsonb_array_length(rounds) = 0").
		Where("created_at < ?", olderThan).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale sessions: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}
