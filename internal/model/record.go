package model

import "time"

// GameID uniquely identifies a started game
type GameID string

// GameRecord is the archived trace of a game start: which lobby it ran in,
// the seating order handed to the game, and when it began. Records are
// written once and never updated.
type GameRecord struct {
	ID        GameID    `json:"id"`
	LobbyCode LobbyCode `json:"lobbyCode"`
	Players   []string  `json:"players"`
	StartedAt time.Time `json:"startedAt"`
}
