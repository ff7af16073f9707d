package session

import (
	"context"
	"sync"

	"github.com/dom/whatnot-go/internal/domain"
)

// MemoryStore keeps the bundle for the life of the process. Useful for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	creds *domain.Credentials
}

// NewMemory returns an empty in-process store.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (*domain.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil, ErrNotFound
	}
	c := *s.creds
	return &c, nil
}

func (s *MemoryStore) Save(_ context.Context, creds *domain.Credentials) error {
	if err := validate("session.MemoryStore.Save", creds); err != nil {
		return err
	}
	c := *creds
	s.mu.Lock()
	s.creds = &c
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	s.creds = nil
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
