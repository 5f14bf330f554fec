package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"kickoff-hq/internal/app"
)

// Storage keeps one player's key/value items in player_storage.
type Storage struct {
	pool     *pgxpool.Pool
	playerID string
}

func NewStorage(pool *pgxpool.Pool, playerID string) *Storage {
	return &Storage{pool: pool, playerID: playerID}
}

func (s *Storage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM player_storage WHERE player_id=$1 AND key=$2`,
		s.playerID, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO player_storage (player_id, key, value, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (player_id, key) DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at`,
		s.playerID, key, value,
	)
	if err != nil {
		return fmt.Errorf("set item %s: %w", key, err)
	}
	return nil
}

// Storages returns an app.StorageFactory backed by pool.
func Storages(pool *pgxpool.Pool) app.StorageFactory {
	return func(playerID string) app.Storage {
		return NewStorage(pool, playerID)
	}
}
