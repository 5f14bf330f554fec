package domain

import "errors"

var (
	// ErrDeckNotFound is returned when no deck exists for a game id.
	ErrDeckNotFound = errors.New("deck not found")
	// ErrInvalidDeck wraps every deck validation failure.
	ErrInvalidDeck = errors.New("invalid deck")
	// ErrGameNotFound indicates the game id is not part of the catalog.
	ErrGameNotFound = errors.New("game not found")
	// ErrSessionNotFound is returned when a player has no open game instance.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrProgressNotLoaded is returned by readers that must not render defaults before the first load.
	ErrProgressNotLoaded = errors.New("progress not loaded")
	// ErrUnknownAction indicates an unsupported client action.
	ErrUnknownAction = errors.New("unknown action")
)
