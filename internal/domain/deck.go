package domain

import "fmt"

const (
	minOptions = 3
	maxOptions = 4
)

// NewDeck validates scenarios and returns an immutable-by-convention deck.
func NewDeck(gameID, title string, scenarios []Scenario) (Deck, error) {
	deck := Deck{GameID: gameID, Title: title, Scenarios: scenarios}
	if err := deck.Validate(); err != nil {
		return Deck{}, err
	}
	return deck, nil
}

// MustDeck is NewDeck for decks compiled into the binary.
func MustDeck(gameID, title string, scenarios []Scenario) Deck {
	deck, err := NewDeck(gameID, title, scenarios)
	if err != nil {
		panic(err)
	}
	return deck
}

// Validate checks the deck invariants: a non-empty ordered sequence of
// scenarios numbered from 1, each with 3-4 uniquely identified options of
// which exactly one is the correct one.
func (d Deck) Validate() error {
	if d.GameID == "" {
		return fmt.Errorf("%w: missing game id", ErrInvalidDeck)
	}
	if len(d.Scenarios) == 0 {
		return fmt.Errorf("%w: %s has no scenarios", ErrInvalidDeck, d.GameID)
	}
	for i, sc := range d.Scenarios {
		if sc.ID != i+1 {
			return fmt.Errorf("%w: %s scenario at position %d has id %d", ErrInvalidDeck, d.GameID, i+1, sc.ID)
		}
		if err := sc.validate(); err != nil {
			return fmt.Errorf("%w: %s scenario %d: %v", ErrInvalidDeck, d.GameID, sc.ID, err)
		}
	}
	return nil
}

func (s Scenario) validate() error {
	if n := len(s.Options); n < minOptions || n > maxOptions {
		return fmt.Errorf("expected %d-%d options, got %d", minOptions, maxOptions, n)
	}
	seen := make(map[string]struct{}, len(s.Options))
	matches := 0
	for _, opt := range s.Options {
		if opt.ID == "" {
			return fmt.Errorf("option with empty id")
		}
		if _, dup := seen[opt.ID]; dup {
			return fmt.Errorf("duplicate option id %q", opt.ID)
		}
		seen[opt.ID] = struct{}{}
		if opt.ID == s.CorrectOptionID {
			matches++
		}
	}
	if matches != 1 {
		return fmt.Errorf("correct option %q not among options", s.CorrectOptionID)
	}
	return nil
}

// HasOption reports whether id names one of the scenario's options.
func (s Scenario) HasOption(id string) bool {
	for _, opt := range s.Options {
		if opt.ID == id {
			return true
		}
	}
	return false
}
