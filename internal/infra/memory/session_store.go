package memory

import (
	"sync"

	"kickoff-hq/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu    sync.RWMutex
	games map[string]*app.Game
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		games: make(map[string]*app.Game),
	}
}

func (s *SessionStore) Put(key string, game *app.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[key] = game
}

func (s *SessionStore) Get(key string) (*app.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[key]
	return game, ok
}

func (s *SessionStore) DeleteIfCurrent(key string, game *app.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.games[key]; ok && current == game {
		delete(s.games, key)
	}
}

// Touch is a no-op; in-process instances live until DeleteIfCurrent.
func (s *SessionStore) Touch(string, *app.Game) {}
