package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"kickoff-hq/internal/domain"
)

// DeckLoader fetches decks from a backing store (static catalog, Postgres).
type DeckLoader interface {
	LoadDeck(ctx context.Context, gameID string) (domain.Deck, error)
}

// DeckRepository caches validated decks in Redis as JSON and falls back to
// a loader on cache miss:
//
//	SET kickoff:deck:{gameID} {deck json} EX ttl
type DeckRepository struct {
	client *redis.Client
	loader DeckLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

func NewDeckRepository(client *redis.Client, loader DeckLoader, ttl time.Duration) *DeckRepository {
	return &DeckRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *DeckRepository) GetDeck(ctx context.Context, gameID string) (domain.Deck, error) {
	if deck, ok := r.cached(ctx, gameID); ok {
		return deck, nil
	}

	result, err, _ := r.sf.Do(gameID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if deck, ok := r.cached(ctx, gameID); ok {
			return deck, nil
		}

		deck, err := r.loader.LoadDeck(ctx, gameID)
		if err != nil {
			return domain.Deck{}, err
		}
		if err := deck.Validate(); err != nil {
			return domain.Deck{}, fmt.Errorf("load deck %s: %w", gameID, err)
		}

		raw, err := json.Marshal(deck)
		if err == nil {
			// Cache fill is best-effort; the loaded deck is still served.
			_ = r.client.Set(ctx, r.key(gameID), raw, r.ttlWithJitter()).Err()
		}
		return deck, nil
	})
	if err != nil {
		return domain.Deck{}, err
	}
	return result.(domain.Deck), nil
}

func (r *DeckRepository) cached(ctx context.Context, gameID string) (domain.Deck, bool) {
	raw, err := r.client.Get(ctx, r.key(gameID)).Bytes()
	if err != nil {
		return domain.Deck{}, false
	}
	var deck domain.Deck
	if err := json.Unmarshal(raw, &deck); err != nil {
		return domain.Deck{}, false
	}
	if deck.Validate() != nil {
		return domain.Deck{}, false
	}
	return deck, true
}

// Invalidate drops the cached deck so the next read reloads it.
func (r *DeckRepository) Invalidate(ctx context.Context, gameID string) error {
	if err := r.client.Del(ctx, r.key(gameID)).Err(); err != nil {
		return fmt.Errorf("invalidate deck %s: %w", gameID, err)
	}
	return nil
}

func (r *DeckRepository) key(gameID string) string {
	return "kickoff:deck:" + gameID
}

func (r *DeckRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
