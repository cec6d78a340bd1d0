package sessionstore

import (
	"sync"

	"github.com/trainhub/trainhub/core/session"
)

// MemStore keeps the session in memory. Used by tests.
type MemStore struct {
	mu    sync.RWMutex
	ident *session.Identity
	token string
}

var _ session.Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (ms *MemStore) Save(ident session.Identity, token string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.ident = &ident
	ms.token = token
	return nil
}

func (ms *MemStore) Restore() (session.Identity, string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if ms.ident == nil || ms.token == "" {
		return session.Identity{}, "", false
	}
	return *ms.ident, ms.token, true
}

func (ms *MemStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.ident = nil
	ms.token = ""
	return nil
}
