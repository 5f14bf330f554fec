package domain

import (
	"errors"
	"testing"
)

func TestNewDeckValidates(t *testing.T) {
	valid := func() []Scenario {
		return []Scenario{
			{
				ID:              1,
				Prompt:          Prompt{Text: "How many points is a touchdown?"},
				Options:         []Option{{ID: "a", Label: "3"}, {ID: "b", Label: "6"}, {ID: "c", Label: "7"}},
				CorrectOptionID: "b",
				Explanation:     "A touchdown is worth six points.",
			},
		}
	}

	if _, err := NewDeck("trivia", "Trivia", valid()); err != nil {
		t.Fatalf("expected valid deck, got %v", err)
	}

	tests := []struct {
		name   string
		gameID string
		mutate func([]Scenario) []Scenario
	}{
		{"missing game id", "", func(s []Scenario) []Scenario { return s }},
		{"empty deck", "trivia", func([]Scenario) []Scenario { return nil }},
		{"bad numbering", "trivia", func(s []Scenario) []Scenario { s[0].ID = 2; return s }},
		{"too few options", "trivia", func(s []Scenario) []Scenario { s[0].Options = s[0].Options[:2]; return s }},
		{"duplicate option", "trivia", func(s []Scenario) []Scenario { s[0].Options[2].ID = "a"; return s }},
		{"correct id missing", "trivia", func(s []Scenario) []Scenario { s[0].CorrectOptionID = "z"; return s }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDeck(tt.gameID, "Trivia", tt.mutate(valid()))
			if !errors.Is(err, ErrInvalidDeck) {
				t.Fatalf("expected ErrInvalidDeck, got %v", err)
			}
		})
	}
}

func TestSessionStatePerfect(t *testing.T) {
	s := SessionState{Phase: PhaseFinished, Score: 5, DeckLength: 5}
	if !s.Perfect() {
		t.Fatalf("expected perfect")
	}
	s.Score = 4
	if s.Perfect() {
		t.Fatalf("expected imperfect")
	}
	s = SessionState{Phase: PhaseInProgress, Score: 5, DeckLength: 5}
	if s.Perfect() {
		t.Fatalf("in-progress session cannot be perfect")
	}
}
