package domain

import "time"

// Option is one candidate answer of a scenario.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PlayerMarker places a player on the field for formation prompts.
// Coordinates are yards: X across the field, Y from the line of scrimmage.
type PlayerMarker struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Point is a waypoint of a drawn route.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Prompt describes the situation shown to the player. Text is always set;
// Formation and Route describe the diagram for diagram-based games.
type Prompt struct {
	Text      string         `json:"text"`
	Formation []PlayerMarker `json:"formation,omitempty"`
	Route     []Point        `json:"route,omitempty"`
}

// Scenario is a single question of a deck with exactly one correct option.
type Scenario struct {
	ID              int      `json:"id"` // 1-based position within the deck
	Prompt          Prompt   `json:"prompt"`
	Options         []Option `json:"options"`
	CorrectOptionID string   `json:"correctOptionId"`
	Explanation     string   `json:"explanation"`
}

// Deck is the fixed ordered list of scenarios for one game.
type Deck struct {
	GameID    string     `json:"gameId"`
	Title     string     `json:"title"`
	Scenarios []Scenario `json:"scenarios"`
}

// Len returns the number of scenarios in the deck.
func (d Deck) Len() int {
	return len(d.Scenarios)
}

// Phase is the coarse lifecycle state of a game session.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

// SessionState is the ephemeral state of one game instance.
type SessionState struct {
	GameID           string `json:"gameId"`
	Phase            Phase  `json:"phase"`
	CurrentIndex     int    `json:"currentIndex"`
	Score            int    `json:"score"`
	SelectedOptionID string `json:"selectedOptionId,omitempty"`
	DeckLength       int    `json:"deckLength"`
}

// Answered reports whether the current scenario already has a selection.
func (s SessionState) Answered() bool {
	return s.SelectedOptionID != ""
}

// Perfect reports whether a finished session answered every scenario correctly.
func (s SessionState) Perfect() bool {
	return s.Phase == PhaseFinished && s.DeckLength > 0 && s.Score == s.DeckLength
}

// ProgressRecord is the persisted completion data for one game.
type ProgressRecord struct {
	Completed   bool      `json:"completed"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

// Cue names a short sound effect.
type Cue string

const (
	CueCorrect Cue = "correct"
	CueWrong   Cue = "wrong"
	CueWin     Cue = "win"
	CueStart   Cue = "start"
	CueClick   Cue = "click"
)

// KnownCues lists every cue a game may dispatch.
var KnownCues = []Cue{CueCorrect, CueWrong, CueWin, CueStart, CueClick}

// Burst is a celebratory particle effect.
type Burst string

const (
	BurstSpark    Burst = "spark"    // a single correct answer
	BurstConfetti Burst = "confetti" // perfect score
)

// GameInfo describes a game tile in the hub.
type GameInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

const (
	ActionCompleted = "Completed"
	ActionPlayNow   = "Play Now"
)

// HubTile is the progress-decorated view of one game.
type HubTile struct {
	Game      GameInfo `json:"game"`
	Completed bool     `json:"completed"`
	Score     *int     `json:"score,omitempty"`
	Action    string   `json:"action"`
}

// HubStats aggregates progress across the catalog for the HQ dashboard.
type HubStats struct {
	TotalGames   int `json:"totalGames"`
	Completed    int `json:"completed"`
	TotalScore   int `json:"totalScore"`
	PerfectGames int `json:"perfectGames"`
}

// HubView is what the hub and dashboard render.
type HubView struct {
	Tiles []HubTile `json:"tiles"`
	Stats HubStats  `json:"stats"`
}
