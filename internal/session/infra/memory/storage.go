package memory

import (
	"context"
	"sync"

	"github.com/klwxsrx/storefront-client/internal/session/domain"
)

type storage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewStorage() domain.Storage {
	return &storage{values: make(map[string]string)}
}

func (s *storage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *storage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *storage) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}
