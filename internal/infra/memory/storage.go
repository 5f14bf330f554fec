package memory

import (
	"context"
	"sync"

	"kickoff-hq/internal/app"
)

// Storage is an in-memory app.Storage for one player.
type Storage struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewStorage() *Storage {
	return &Storage{items: make(map[string]string)}
}

func (s *Storage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *Storage) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Storages hands out one Storage per player.
type Storages struct {
	mu      sync.Mutex
	players map[string]*Storage
}

func NewStorages() *Storages {
	return &Storages{players: make(map[string]*Storage)}
}

// For returns the player's storage, creating it on first use.
func (s *Storages) For(playerID string) app.Storage {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.players[playerID]
	if !ok {
		st = NewStorage()
		s.players[playerID] = st
	}
	return st
}
