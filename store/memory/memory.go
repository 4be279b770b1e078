package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/kochabx/vetclinic/store"
)

// Store keeps values in process memory
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ store.Store = (*Store)(nil)

// New creates an empty store, optionally seeded
func New(seed map[string]string) *Store {
	data := make(map[string]string, len(seed))
	maps.Copy(data, seed)
	return &Store{data: data}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// Snapshot returns a copy of every entry
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.data)
}

func (s *Store) Close() error {
	return nil
}
