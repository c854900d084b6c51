package model

// LobbyCode is a human-readable identifier for joining lobbies
type LobbyCode string

// LobbyState represents the current state of a lobby
type LobbyState string

const (
	// LobbyStateGathering means no game has started; players may join freely
	// up to capacity.
	LobbyStateGathering LobbyState = "gathering"
	// LobbyStateInGame means a game is running; only reconnections under a
	// participant's name are admitted.
	LobbyStateInGame LobbyState = "in_game"
)
