package model

import "errors"

// Common errors used across the application
var (
	// Registry errors
	ErrDuplicateConnection = errors.New("connection is already registered")
	ErrUnknownConnection   = errors.New("connection is not registered")

	// Join policy errors
	ErrDuplicateName  = errors.New("name is already taken")
	ErrLobbyFull      = errors.New("lobby is full")
	ErrGameInProgress = errors.New("game is in progress")

	// Game start errors
	ErrNotEnoughPlayers = errors.New("not enough players to start a game")
	ErrTooManyPlayers   = errors.New("too many players to start a game")
	ErrAlreadyInGame    = errors.New("a game is already in progress")

	// Query errors
	ErrNoActiveGame = errors.New("no active game")

	// Directory errors
	ErrLobbyNotFound = errors.New("lobby not found")

	// Archive errors
	ErrGameRecordNotFound = errors.New("game record not found")
)
