package model

import "errors"

// Common errors used across the application
var (
	// Player validation errors
	ErrInvalidName        = errors.New("invalid player name")
	ErrPositionOutOfRange = errors.New("player position out of range")
	ErrInvalidRoll        = errors.New("invalid dice roll")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Session errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionOver         = errors.New("session is already finished")
	ErrNotPlayerTurn       = errors.New("not this player's turn")
	ErrPlayerInactive      = errors.New("player is no longer in the game")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")
	ErrTooManyPlayers      = errors.New("too many players")
	ErrCorruptSession      = errors.New("stored session is inconsistent")
	ErrInvalidDecider      = errors.New("unknown purchase policy")

	// Board errors
	ErrLayoutNotFound = errors.New("board layout not found")
	ErrInvalidLayout  = errors.New("invalid board layout")
)
