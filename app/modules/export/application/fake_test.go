package exportservice

import (
	"context"
	"sync"

	sessionservice "github.com/Black-And-White-Club/belote-bot/app/modules/session/application"
	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	"github.com/google/uuid"
)

// FakeSessions serves snapshots from a map.
type FakeSessions struct {
	sessions map[uuid.UUID]*sessionservice.SessionSnapshot
	err      error
}

func (f *FakeSessions) GetSession(_ context.Context, id uuid.UUID) (*sessionservice.SessionSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	snapshot, ok := f.sessions[id]
	if !ok {
		return nil, sessiondb.ErrNotFound
	}
	return snapshot, nil
}

type upload struct {
	contentType string
	body        []byte
}

// FakeStorage keeps uploads in memory.
type FakeStorage struct {
	mu      sync.Mutex
	uploads map[string]upload
	err     error
}

func (f *FakeStorage) Upload(_ context.Context, key, contentType string, body []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if f.uploads == nil {
		f.uploads = map[string]upload{}
	}
	f.uploads[key] = upload{contentType: contentType, body: body}
	return "https://files.example.test/" + key, nil
}

var (
	_ SessionReader = (*FakeSessions)(nil)
	_ Storage       = (*FakeStorage)(nil)
)
