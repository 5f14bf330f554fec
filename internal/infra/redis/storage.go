package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"kickoff-hq/internal/app"
)

// Storage keeps one player's key/value items under kickoff:{player}:{key}.
// Items never expire; progress lives until cleared externally.
type Storage struct {
	client   *redis.Client
	playerID string
}

func NewStorage(client *redis.Client, playerID string) *Storage {
	return &Storage{client: client, playerID: playerID}
}

func (s *Storage) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) key(key string) string {
	return StorageKey(s.playerID, key)
}

// StorageKey is the Redis key of a player's item.
func StorageKey(playerID, key string) string {
	return "kickoff:" + playerID + ":" + key
}

// Storages returns an app.StorageFactory backed by client.
func Storages(client *redis.Client) app.StorageFactory {
	return func(playerID string) app.Storage {
		return NewStorage(client, playerID)
	}
}
