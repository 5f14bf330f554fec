package memory

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"kickoff-hq/internal/domain"
)

// DeckLoader fetches decks from a backing store (static catalog, Postgres).
type DeckLoader interface {
	LoadDeck(ctx context.Context, gameID string) (domain.Deck, error)
}

// DeckRepository caches validated decks with TTL to avoid repeated loads.
// A non-positive TTL keeps entries for the life of the process.
type DeckRepository struct {
	loader DeckLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedDeck
}

type cachedDeck struct {
	deck      domain.Deck
	expiresAt time.Time
}

func NewDeckRepository(loader DeckLoader, ttl time.Duration) *DeckRepository {
	return &DeckRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedDeck),
	}
}

func (r *DeckRepository) GetDeck(ctx context.Context, gameID string) (domain.Deck, error) {
	if deck, ok := r.cached(gameID); ok {
		return deck, nil
	}

	result, err, _ := r.sf.Do(gameID, func() (interface{}, error) {
		if deck, ok := r.cached(gameID); ok {
			return deck, nil
		}

		deck, err := r.loader.LoadDeck(ctx, gameID)
		if err != nil {
			return domain.Deck{}, err
		}
		if err := deck.Validate(); err != nil {
			return domain.Deck{}, fmt.Errorf("load deck %s: %w", gameID, err)
		}

		r.mu.Lock()
		r.cache[gameID] = cachedDeck{
			deck:      deck,
			expiresAt: r.clock().Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return deck, nil
	})
	if err != nil {
		return domain.Deck{}, err
	}
	return result.(domain.Deck), nil
}

func (r *DeckRepository) cached(gameID string) (domain.Deck, bool) {
	now := r.clock()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.cache[gameID]; ok && (r.ttl <= 0 || entry.expiresAt.After(now)) {
		return entry.deck, true
	}
	return domain.Deck{}, false
}

func (r *DeckRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticDeckLoader serves decks compiled into the binary.
type StaticDeckLoader struct {
	decks map[string]domain.Deck
}

func NewStaticDeckLoader(decks []domain.Deck) *StaticDeckLoader {
	byID := make(map[string]domain.Deck, len(decks))
	for _, deck := range decks {
		byID[deck.GameID] = deck
	}
	return &StaticDeckLoader{decks: byID}
}

func (l *StaticDeckLoader) LoadDeck(_ context.Context, gameID string) (domain.Deck, error) {
	if deck, ok := l.decks[gameID]; ok {
		return deck, nil
	}
	return domain.Deck{}, domain.ErrDeckNotFound
}

// ChainDeckLoader tries each loader in order, moving on only when a loader
// reports the deck as missing.
type ChainDeckLoader []DeckLoader

func (c ChainDeckLoader) LoadDeck(ctx context.Context, gameID string) (domain.Deck, error) {
	for _, loader := range c {
		deck, err := loader.LoadDeck(ctx, gameID)
		if errors.Is(err, domain.ErrDeckNotFound) {
			continue
		}
		return deck, err
	}
	return domain.Deck{}, domain.ErrDeckNotFound
}
