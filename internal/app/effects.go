package app

import (
	"context"

	"kickoff-hq/internal/domain"
)

// Effects receives best-effort feedback commands issued by game transitions.
// Implementations must return promptly; nothing waits on them.
type Effects interface {
	Cue(ctx context.Context, cue domain.Cue)
	Burst(ctx context.Context, kind domain.Burst)
}

// NopEffects drops every command.
type NopEffects struct{}

func (NopEffects) Cue(context.Context, domain.Cue)     {}
func (NopEffects) Burst(context.Context, domain.Burst) {}

// BurstSink renders particle effects.
type BurstSink interface {
	ShowBurst(kind domain.Burst)
}

// FeedbackEffects routes cues through a SoundDispatcher and bursts to a sink.
type FeedbackEffects struct {
	Sound  *SoundDispatcher
	Bursts BurstSink
}

func (f FeedbackEffects) Cue(ctx context.Context, cue domain.Cue) {
	if f.Sound != nil {
		f.Sound.Play(ctx, cue)
	}
}

func (f FeedbackEffects) Burst(_ context.Context, kind domain.Burst) {
	if f.Bursts != nil {
		f.Bursts.ShowBurst(kind)
	}
}
