package app

import (
	"context"

	"go.uber.org/zap"
	"kickoff-hq/internal/domain"
)

// SessionRepository abstracts where open game instances live (in-memory, Redis-marked, etc).
type SessionRepository interface {
	Put(key string, game *Game)
	Get(key string) (*Game, bool)
	// DeleteIfCurrent drops key only while it still maps to game, so a
	// stale connection cannot remove a newer instance.
	DeleteIfCurrent(key string, game *Game)
	// Touch marks the instance under key as still in use.
	Touch(key string, game *Game)
}

// DeckRepository loads decks (from cache/backing store).
type DeckRepository interface {
	GetDeck(ctx context.Context, gameID string) (domain.Deck, error)
}

// SessionKey identifies one player's instance of a game.
func SessionKey(playerID, gameID string) string {
	return playerID + "/" + gameID
}

// GameService contains the game use cases.
type GameService struct {
	sessions SessionRepository
	decks    DeckRepository
	storages StorageFactory
	catalog  []domain.GameInfo
	assets   SoundAssets
	logger   *zap.Logger
}

func NewGameService(sessions SessionRepository, decks DeckRepository, storages StorageFactory, catalog []domain.GameInfo, assets SoundAssets, logger *zap.Logger) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{
		sessions: sessions,
		decks:    decks,
		storages: storages,
		catalog:  catalog,
		assets:   assets,
		logger:   logger,
	}
}

// Catalog returns the games shown in the hub.
func (s *GameService) Catalog() []domain.GameInfo {
	return append([]domain.GameInfo(nil), s.catalog...)
}

// Open mounts a fresh game instance for the player, replacing any previous one.
func (s *GameService) Open(ctx context.Context, playerID, gameID string, effects Effects) (*Game, error) {
	if !s.inCatalog(gameID) {
		return nil, domain.ErrGameNotFound
	}
	deck, err := s.decks.GetDeck(ctx, gameID)
	if err != nil {
		return nil, err
	}
	progress := s.Progress(ctx, playerID)

	game := NewGame(deck, progress, effects)
	s.sessions.Put(SessionKey(playerID, gameID), game)
	s.logger.Debug("game opened", zap.String("player_id", playerID), zap.String("game_id", gameID))
	return game, nil
}

// Close unmounts the instance; its in-progress state is discarded.
func (s *GameService) Close(playerID string, game *Game) {
	s.sessions.DeleteIfCurrent(SessionKey(playerID, game.ID()), game)
}

// Touch refreshes the liveness of the player's open instance.
func (s *GameService) Touch(playerID string, game *Game) {
	s.sessions.Touch(SessionKey(playerID, game.ID()), game)
}

// Game returns the player's open instance of gameID.
func (s *GameService) Game(playerID, gameID string) (*Game, error) {
	game, ok := s.sessions.Get(SessionKey(playerID, gameID))
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return game, nil
}

// Progress returns the player's progress freshly loaded from storage, so
// completions written by other replicas are visible.
func (s *GameService) Progress(ctx context.Context, playerID string) *ProgressStore {
	ids := make([]string, 0, len(s.catalog))
	for _, game := range s.catalog {
		ids = append(ids, game.ID)
	}
	store := NewProgressStore(s.storages(playerID), ids, s.logger.With(zap.String("player_id", playerID)))
	store.Load(ctx)
	return store
}

// Hub renders the hub view for the player.
func (s *GameService) Hub(ctx context.Context, playerID string) (domain.HubView, error) {
	view, err := BuildHub(s.catalog, s.Progress(ctx, playerID))
	if err != nil {
		return domain.HubView{}, err
	}
	lengths := make(map[string]int, len(s.catalog))
	for _, game := range s.catalog {
		deck, err := s.decks.GetDeck(ctx, game.ID)
		if err != nil {
			s.logger.Warn("deck unavailable for hub stats", zap.String("game_id", game.ID), zap.Error(err))
			continue
		}
		lengths[game.ID] = deck.Len()
	}
	CountPerfect(&view, lengths)
	return view, nil
}

// Sound builds a cue dispatcher for the player that plays through player.
func (s *GameService) Sound(playerID string, player SoundPlayer) *SoundDispatcher {
	return NewSoundDispatcher(s.storages(playerID), s.assets, player, s.logger.With(zap.String("player_id", playerID)))
}

func (s *GameService) inCatalog(gameID string) bool {
	for _, game := range s.catalog {
		if game.ID == gameID {
			return true
		}
	}
	return false
}
