package ws

import (
	"encoding/json"

	"github.com/conclave-gg/conclave/internal/api/apierr"
)

// Command is a client-to-server message
type Command struct {
	Type string `json:"type"`
}

// Command types
const (
	// CommandStartGame starts the lobby's game
	CommandStartGame = "start-game"
	// CommandAdvanceRound advances the running game by one round
	CommandAdvanceRound = "advance-round"
	// CommandGetState re-sends the current view to the requesting connection
	CommandGetState = "get-state"
)

// errorFrame renders a rejected join or command as a wire error frame, using
// the same codes as the HTTP error responses
func errorFrame(err error) []byte {
	_, apiError := apierr.Classify(err)
	frame, _ := json.Marshal(apierr.ErrorResponse{Error: apiError})
	return frame
}
