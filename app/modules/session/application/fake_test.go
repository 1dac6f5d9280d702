package sessionservice

import (
	"context"
	"sync"
	"time"

	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Session Repo
// ------------------------

type FakeSessionRepo struct {
	trace []string

	// sessions backs the default behavior when no Func override is set.
	sessions map[uuid.UUID]*sessiondb.GameSession

	CreateFunc               func(ctx context.Context, db bun.IDB, session *sessiondb.GameSession) error
	GetByIDFunc              func(ctx context.Context, db bun.IDB, id uuid.UUID) (*sessiondb.GameSession, error)
	GetForUpdateFunc         func(ctx context.Context, db bun.IDB, id uuid.UUID) (*sessiondb.GameSession, error)
	UpdateFunc               func(ctx context.Context, db bun.IDB, session *sessiondb.GameSession) error
	DeleteFunc               func(ctx context.Context, db bun.IDB, id uuid.UUID) error
	ListHistoryFunc          func(ctx context.Context, db bun.IDB, limit int, since *time.Time) ([]sessiondb.GameSession, error)
	DeleteStaleUnstartedFunc func(ctx context.Context, db bun.IDB, olderThan time.Time) (int, error)
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		trace:    []string{},
		sessions: map[uuid.UUID]*sessiondb.GameSession{},
	}
}

func (f *FakeSessionRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeSessionRepo) Create(ctx context.Context, db bun.IDB, session *sessiondb.GameSession) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, session)
	}
	copied := *session
	f.sessions[session.SessionID] = &copied
	return nil
}

func (f *FakeSessionRepo) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*sessiondb.GameSession, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return f.load(id)
}

func (f *FakeSessionRepo) GetForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*sessiondb.GameSession, error) {
	f.record("GetForUpdate")
	if f.GetForUpdateFunc != nil {
		return f.GetForUpdateFunc(ctx, db, id)
	}
	return f.load(id)
}

func (f *FakeSessionRepo) Update(ctx context.Context, db bun.IDB, session *sessiondb.GameSession) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, session)
	}
	if _, ok := f.sessions[session.SessionID]; !ok {
		return sessiondb.ErrNotFound
	}
	copied := *session
	f.sessions[session.SessionID] = &copied
	return nil
}

func (f *FakeSessionRepo) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	if _, ok := f.sessions[id]; !ok {
		return sessiondb.ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *FakeSessionRepo) ListHistory(ctx context.Context, db bun.IDB, limit int, since *time.Time) ([]sessiondb.GameSession, error) {
	f.record("ListHistory")
	if f.ListHistoryFunc != nil {
		return f.ListHistoryFunc(ctx, db, limit, since)
	}
	return nil, nil
}

func (f *FakeSessionRepo) DeleteStaleUnstarted(ctx context.Context, db bun.IDB, olderThan time.Time) (int, error) {
	f.record("DeleteStaleUnstarted")
	if f.DeleteStaleUnstartedFunc != nil {
		return f.DeleteStaleUnstartedFunc(ctx, db, olderThan)
	}
	return 0, nil
}

func (f *FakeSessionRepo) load(id uuid.UUID) (*sessiondb.GameSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, sessiondb.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

// --- Accessors for assertions ---

func (f *FakeSessionRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ sessiondb.Repository = (*FakeSessionRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu        sync.Mutex
	published map[string][]*message.Message
	Err       error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{published: map[string][]*message.Message{}}
}

func (p *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.published[topic] = append(p.published[topic], messages...)
	return nil
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Messages(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*message.Message(nil), p.published[topic]...)
}

var _ message.Publisher = (*FakePublisher)(nil)
