package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
	"kickoff-hq/internal/domain"
)

// Storage is the persisted string key/value boundary scoped to one player,
// the server-side stand-in for a browser's local storage.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
}

// StorageFactory returns the storage scoped to a player.
type StorageFactory func(playerID string) Storage

const progressKeyPrefix = "kickoff-progress:"

// ProgressKey is the storage key holding the record for gameID.
func ProgressKey(gameID string) string {
	return progressKeyPrefix + gameID
}

// ProgressStore maps game ids to their last completion record. Reads are
// served from memory after Load; MarkCompleted writes through to storage.
// A write storage refuses stays in memory and is retried on the next Load.
type ProgressStore struct {
	storage Storage
	gameIDs []string
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.RWMutex
	loaded   bool
	records  map[string]domain.ProgressRecord
	unsynced map[string]bool
}

func NewProgressStore(storage Storage, gameIDs []string, logger *zap.Logger) *ProgressStore {
	return newProgressStoreWithClock(storage, gameIDs, logger, time.Now)
}

func newProgressStoreWithClock(storage Storage, gameIDs []string, logger *zap.Logger, now func() time.Time) *ProgressStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressStore{
		storage:  storage,
		gameIDs:  append([]string(nil), gameIDs...),
		logger:   logger,
		now:      now,
		records:  make(map[string]domain.ProgressRecord),
		unsynced: make(map[string]bool),
	}
}

// Load reads every known game's record from storage, replacing the
// in-memory map. Calling it again yields the same map for unchanged storage.
// A game whose read fails, or whose last write was refused, keeps the
// record already held in memory.
func (p *ProgressStore) Load(ctx context.Context) {
	p.flush(ctx)

	fresh := make(map[string]domain.ProgressRecord, len(p.gameIDs))
	failed := make(map[string]bool)
	for _, gameID := range p.gameIDs {
		raw, ok, err := p.storage.GetItem(ctx, ProgressKey(gameID))
		if err != nil {
			p.logger.Warn("progress read failed", zap.String("game_id", gameID), zap.Error(err))
			failed[gameID] = true
			continue
		}
		if !ok {
			continue
		}
		var rec domain.ProgressRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			p.logger.Warn("progress record undecodable", zap.String("game_id", gameID), zap.Error(err))
			continue
		}
		fresh[gameID] = rec
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for gameID, rec := range p.records {
		if failed[gameID] || p.unsynced[gameID] {
			fresh[gameID] = rec
		}
	}
	p.records = fresh
	p.loaded = true
}

// IsLoaded reports whether Load has completed at least once.
func (p *ProgressStore) IsLoaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// MarkCompleted upserts the record for gameID and writes it through.
func (p *ProgressStore) MarkCompleted(ctx context.Context, gameID string, score int) domain.ProgressRecord {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec := domain.ProgressRecord{Completed: true, Score: score, CompletedAt: p.now().UTC()}
	if prev, ok := p.records[gameID]; ok && prev.Completed && prev.Score == score {
		rec.CompletedAt = prev.CompletedAt
	}
	p.records[gameID] = rec
	p.write(ctx, gameID, rec)
	return rec
}

// flush retries the writes storage refused earlier.
func (p *ProgressStore) flush(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for gameID := range p.unsynced {
		p.write(ctx, gameID, p.records[gameID])
	}
}

// write must be called with p.mu held.
func (p *ProgressStore) write(ctx context.Context, gameID string, rec domain.ProgressRecord) {
	raw, err := json.Marshal(rec)
	if err != nil {
		p.logger.Warn("progress record encode failed", zap.String("game_id", gameID), zap.Error(err))
		return
	}
	if err := p.storage.SetItem(ctx, ProgressKey(gameID), string(raw)); err != nil {
		p.logger.Warn("progress write deferred", zap.String("game_id", gameID), zap.Error(err))
		p.unsynced[gameID] = true
		return
	}
	delete(p.unsynced, gameID)
}

// Get returns the record for gameID; the zero record (completed=false) when absent.
func (p *ProgressStore) Get(gameID string) (domain.ProgressRecord, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	rec, ok := p.records[gameID]
	return rec, ok
}

// Snapshot copies every known record.
func (p *ProgressStore) Snapshot() map[string]domain.ProgressRecord {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]domain.ProgressRecord, len(p.records))
	for k, v := range p.records {
		out[k] = v
	}
	return out
}
