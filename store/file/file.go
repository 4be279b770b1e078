package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/kochabx/vetclinic/store"
)

// Store persists entries to a JSON file, rewritten atomically on every change.
// The file is readable by the owner only since it holds the session token.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[string]string
}

var _ store.Store = (*Store)(nil)

type snapshot struct {
	Entries map[string]string `json:"entries"`
}

// Open loads path if it exists; the file is created on first write
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: map[string]string{}}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
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

	prev, had := s.data[key]
	s.data[key] = value
	if err := s.save(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.data[k]; ok {
			removed[k] = v
			delete(s.data, k)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	if err := s.save(); err != nil {
		// memory must keep matching the file
		maps.Copy(s.data, removed)
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	data, err := json.MarshalIndent(snapshot{Entries: s.data}, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	return nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("file store: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	var snap snapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("file store: corrupt %s: %w", s.path, err)
	}
	if snap.Entries != nil {
		s.data = snap.Entries
	}
	return nil
}
