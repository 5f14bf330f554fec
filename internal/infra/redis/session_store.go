package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"kickoff-hq/internal/app"
)

// SessionStore is a Redis-aware implementation of SessionRepository.
// Game instances stay in process (they are bound to a websocket); Redis
// only carries a liveness marker per open game so other tooling can see
// who is playing what. The marker expires unless Touch renews it.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	games  map[string]*app.Game
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
		games:  make(map[string]*app.Game),
	}
}

func (s *SessionStore) Put(key string, game *app.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[key] = game
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(key), game.ID(), s.ttl).Err()
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
	current, ok := s.games[key]
	if !ok || current != game {
		return
	}
	delete(s.games, key)
	_ = s.client.Del(context.Background(), s.key(key)).Err()
}

// Touch extends the liveness marker while game is still the instance under key.
func (s *SessionStore) Touch(key string, game *app.Game) {
	if s.ttl <= 0 {
		return
	}
	s.mu.RLock()
	current, ok := s.games[key]
	s.mu.RUnlock()
	if !ok || current != game {
		return
	}
	_ = s.client.Expire(context.Background(), s.key(key), s.ttl).Err()
}

func (s *SessionStore) key(key string) string {
	return "kickoff:session:" + key
}
