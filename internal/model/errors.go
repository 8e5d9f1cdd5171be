package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrInvalidBoard  = errors.New("invalid board")
	ErrInvalidPlayer = errors.New("invalid player")
	ErrInvalidCell   = errors.New("invalid cell index")
	ErrCellOccupied  = errors.New("cell is already occupied")

	// Strategy errors
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrNoMove          = errors.New("no move available")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrNotPlayerTurn   = errors.New("not this player's turn")
	ErrAIMovePending   = errors.New("ai move is pending")
	ErrGameOver        = errors.New("game is already over")
	ErrNotModeled      = errors.New("strategy has no opponent model")
)
