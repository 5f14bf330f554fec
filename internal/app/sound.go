package app

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"kickoff-hq/internal/domain"
)

// MuteKey holds the global mute flag as the literal "true" or "false".
const MuteKey = "kickoff-sound-muted"

// SoundAssets resolves cue names to asset URLs.
type SoundAssets map[domain.Cue]string

// DefaultSoundAssets maps every known cue to <baseURL>/<cue>.mp3.
func DefaultSoundAssets(baseURL string) SoundAssets {
	base := strings.TrimRight(baseURL, "/")
	assets := make(SoundAssets, len(domain.KnownCues))
	for _, cue := range domain.KnownCues {
		assets[cue] = base + "/" + string(cue) + ".mp3"
	}
	return assets
}

// SoundPlayer plays a resolved asset. Implementations must not block.
type SoundPlayer interface {
	PlaySound(cue domain.Cue, assetURL string)
}

// SoundDispatcher plays named cues unless the persisted mute flag is set.
type SoundDispatcher struct {
	storage Storage
	assets  SoundAssets
	player  SoundPlayer
	logger  *zap.Logger
}

func NewSoundDispatcher(storage Storage, assets SoundAssets, player SoundPlayer, logger *zap.Logger) *SoundDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoundDispatcher{storage: storage, assets: assets, player: player, logger: logger}
}

// Play dispatches cue fire-and-forget. Muted playback, unknown cues and
// missing assets are no-ops.
func (d *SoundDispatcher) Play(ctx context.Context, cue domain.Cue) {
	if d.Muted(ctx) {
		return
	}
	url, ok := d.assets[cue]
	if !ok || url == "" || d.player == nil {
		return
	}
	d.player.PlaySound(cue, url)
}

// Muted reads the persisted flag; unreadable or malformed values count as unmuted.
func (d *SoundDispatcher) Muted(ctx context.Context) bool {
	raw, ok, err := d.storage.GetItem(ctx, MuteKey)
	if err != nil {
		d.logger.Debug("mute flag unreadable", zap.Error(err))
		return false
	}
	return ok && raw == "true"
}

// SetMuted persists the flag. A failed write is logged and dropped.
func (d *SoundDispatcher) SetMuted(ctx context.Context, muted bool) {
	value := "false"
	if muted {
		value = "true"
	}
	if err := d.storage.SetItem(ctx, MuteKey, value); err != nil {
		d.logger.Warn("mute flag write dropped", zap.Error(err))
	}
}
