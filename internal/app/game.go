package app

import (
	"context"
	"sync"

	"kickoff-hq/internal/domain"
)

// ProgressRecorder receives the terminal write of a finished game.
type ProgressRecorder interface {
	MarkCompleted(ctx context.Context, gameID string, score int) domain.ProgressRecord
}

// ScenarioView is the client-facing rendering of the current scenario.
// The answer and explanation are revealed only once a selection exists.
type ScenarioView struct {
	ID              int             `json:"id"`
	Position        int             `json:"position"`
	Total           int             `json:"total"`
	Prompt          domain.Prompt   `json:"prompt"`
	Options         []domain.Option `json:"options"`
	SelectedID      string          `json:"selectedOptionId,omitempty"`
	CorrectOptionID string          `json:"correctOptionId,omitempty"`
	Correct         *bool           `json:"correct,omitempty"`
	Explanation     string          `json:"explanation,omitempty"`
}

// Game walks one deck: one selection per scenario, a running score and a
// single progress write when the deck is exhausted. Operations called
// outside their valid phase leave the state untouched and report false.
type Game struct {
	deck     domain.Deck
	progress ProgressRecorder
	effects  Effects

	mu     sync.Mutex
	state  domain.SessionState
	record *domain.ProgressRecord
}

func NewGame(deck domain.Deck, progress ProgressRecorder, effects Effects) *Game {
	if effects == nil {
		effects = NopEffects{}
	}
	g := &Game{deck: deck, progress: progress, effects: effects}
	g.state = g.initialState()
	return g
}

func (g *Game) initialState() domain.SessionState {
	return domain.SessionState{
		GameID:     g.deck.GameID,
		Phase:      domain.PhaseNotStarted,
		DeckLength: g.deck.Len(),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.deck.GameID
}

// State returns a copy of the session state.
func (g *Game) State() domain.SessionState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Start begins a run from a fresh NotStarted state.
func (g *Game) Start(ctx context.Context) (domain.SessionState, bool) {
	g.mu.Lock()
	if g.state.Phase != domain.PhaseNotStarted {
		st := g.state
		g.mu.Unlock()
		return st, false
	}
	g.state.Phase = domain.PhaseInProgress
	g.state.CurrentIndex = 0
	g.state.Score = 0
	g.state.SelectedOptionID = ""
	st := g.state
	g.mu.Unlock()

	g.effects.Cue(ctx, domain.CueStart)
	return st, true
}

// SelectOption records the first selection for the current scenario.
// Later selections, and ids that are not options of the scenario, are ignored.
func (g *Game) SelectOption(ctx context.Context, optionID string) (domain.SessionState, bool) {
	g.mu.Lock()
	if g.state.Phase != domain.PhaseInProgress || g.state.Answered() {
		st := g.state
		g.mu.Unlock()
		return st, false
	}
	scenario := g.deck.Scenarios[g.state.CurrentIndex]
	if !scenario.HasOption(optionID) {
		st := g.state
		g.mu.Unlock()
		return st, false
	}
	g.state.SelectedOptionID = optionID
	correct := optionID == scenario.CorrectOptionID
	if correct {
		g.state.Score++
	}
	st := g.state
	g.mu.Unlock()

	if correct {
		g.effects.Cue(ctx, domain.CueCorrect)
		g.effects.Burst(ctx, domain.BurstSpark)
	} else {
		g.effects.Cue(ctx, domain.CueWrong)
	}
	return st, true
}

// Advance moves past an answered scenario. On the last scenario it
// finishes the run and records progress.
func (g *Game) Advance(ctx context.Context) (domain.SessionState, bool) {
	g.mu.Lock()
	if g.state.Phase != domain.PhaseInProgress || !g.state.Answered() {
		st := g.state
		g.mu.Unlock()
		return st, false
	}
	if g.state.CurrentIndex < g.deck.Len()-1 {
		g.state.CurrentIndex++
		g.state.SelectedOptionID = ""
		st := g.state
		g.mu.Unlock()
		g.effects.Cue(ctx, domain.CueClick)
		return st, true
	}

	g.state.Phase = domain.PhaseFinished
	st := g.state
	// Recorded under the lock so a duplicate Advance cannot write twice.
	if g.progress != nil {
		rec := g.progress.MarkCompleted(ctx, g.deck.GameID, st.Score)
		g.record = &rec
	}
	g.mu.Unlock()

	g.effects.Cue(ctx, domain.CueWin)
	if st.Perfect() {
		g.effects.Burst(ctx, domain.BurstConfetti)
	}
	return st, true
}

// Reset discards the run. Recorded progress is kept.
func (g *Game) Reset() domain.SessionState {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = g.initialState()
	return g.state
}

// Record returns the progress written when this instance last finished a run.
func (g *Game) Record() (domain.ProgressRecord, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.record == nil {
		return domain.ProgressRecord{}, false
	}
	return *g.record, true
}

// Current renders the scenario at the current index; false unless in progress.
func (g *Game) Current() (ScenarioView, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.Phase != domain.PhaseInProgress {
		return ScenarioView{}, false
	}
	sc := g.deck.Scenarios[g.state.CurrentIndex]
	view := ScenarioView{
		ID:       sc.ID,
		Position: g.state.CurrentIndex + 1,
		Total:    g.deck.Len(),
		Prompt:   sc.Prompt,
		Options:  append([]domain.Option(nil), sc.Options...),
	}
	if g.state.Answered() {
		correct := g.state.SelectedOptionID == sc.CorrectOptionID
		view.SelectedID = g.state.SelectedOptionID
		view.CorrectOptionID = sc.CorrectOptionID
		view.Correct = &correct
		view.Explanation = sc.Explanation
	}
	return view, true
}
