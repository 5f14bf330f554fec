package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"kickoff-hq/internal/domain"
	"kickoff-hq/internal/infra/memory"
)

func TestDeckRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		DeckLoader: memory.NewStaticDeckLoader([]domain.Deck{sampleDeck()}),
	}
	repo := NewDeckRepository(client, loader, time.Minute)

	deck, err := repo.GetDeck(context.Background(), "football-iq")
	if err != nil {
		t.Fatalf("get deck: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("kickoff:deck:football-iq") {
		t.Fatalf("expected deck cached in redis")
	}

	// Second call should hit cache, loader not incremented.
	cached, _ := repo.GetDeck(context.Background(), "football-iq")
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.Scenarios[0].CorrectOptionID != deck.Scenarios[0].CorrectOptionID || cached.Len() != deck.Len() {
		t.Fatalf("cached deck differs: %+v", cached)
	}

	if err := repo.Invalidate(context.Background(), "football-iq"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, _ = repo.GetDeck(context.Background(), "football-iq")
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls=%d", loader.calls)
	}
}

func TestDeckRepositoryIgnoresCorruptCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	_ = mr.Set("kickoff:deck:football-iq", "{broken")
	loader := &countingLoader{
		DeckLoader: memory.NewStaticDeckLoader([]domain.Deck{sampleDeck()}),
	}
	repo := NewDeckRepository(newClient(mr), loader, time.Minute)

	if _, err := repo.GetDeck(context.Background(), "football-iq"); err != nil {
		t.Fatalf("get deck: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected fallback to loader, calls=%d", loader.calls)
	}
	if _, err := repo.GetDeck(context.Background(), "missing"); !errors.Is(err, domain.ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound, got %v", err)
	}
}

type countingLoader struct {
	memory.DeckLoader
	calls int
}

func (l *countingLoader) LoadDeck(ctx context.Context, gameID string) (domain.Deck, error) {
	l.calls++
	return l.DeckLoader.LoadDeck(ctx, gameID)
}

func sampleDeck() domain.Deck {
	return domain.Deck{
		GameID: "football-iq",
		Title:  "Football IQ",
		Scenarios: []domain.Scenario{
			{
				ID:     1,
				Prompt: domain.Prompt{Text: "How many points is a safety?"},
				Options: []domain.Option{
					{ID: "a", Label: "1"},
					{ID: "b", Label: "2"},
					{ID: "c", Label: "3"},
				},
				CorrectOptionID: "b",
				Explanation:     "A safety is worth two points.",
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
