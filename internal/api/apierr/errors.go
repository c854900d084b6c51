package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/conclave-gg/conclave/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError. The same shape rides inside WebSocket
// error frames.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeDuplicateConnection = "DUPLICATE_CONNECTION"
	CodeUnknownConnection   = "UNKNOWN_CONNECTION"
	CodeDuplicateName       = "DUPLICATE_NAME"
	CodeLobbyFull           = "LOBBY_FULL"
	CodeGameInProgress      = "GAME_IN_PROGRESS"
	CodeNotEnoughPlayers    = "NOT_ENOUGH_PLAYERS"
	CodeTooManyPlayers      = "TOO_MANY_PLAYERS"
	CodeAlreadyInGame       = "ALREADY_IN_GAME"
	CodeNoActiveGame        = "NO_ACTIVE_GAME"
	CodeLobbyNotFound       = "LOBBY_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeUnknownCommand      = "UNKNOWN_COMMAND"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Classify maps an error to its HTTP status and wire representation, for
// callers that deliver errors over something other than a plain HTTP response
func Classify(err error) (int, APIError) {
	he := toHTTPError(err)
	return he.status, he.apiError
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrDuplicateConnection):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateConnection, "Connection is already registered"}}
	case errors.Is(err, model.ErrUnknownConnection):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownConnection, "Connection is not registered"}}
	case errors.Is(err, model.ErrDuplicateName):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateName, "Name is already taken"}}
	case errors.Is(err, model.ErrLobbyFull):
		return &httpError{http.StatusConflict, APIError{CodeLobbyFull, "Lobby is full"}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameInProgress, "Game is in progress"}}
	case errors.Is(err, model.ErrNotEnoughPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNotEnoughPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrTooManyPlayers):
		return &httpError{http.StatusConflict, APIError{CodeTooManyPlayers, "Too many players to start"}}
	case errors.Is(err, model.ErrAlreadyInGame):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInGame, "Game has already started"}}
	case errors.Is(err, model.ErrNoActiveGame):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveGame, "No game is running"}}
	case errors.Is(err, model.ErrLobbyNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeLobbyNotFound, "Lobby not found"}}
	case errors.Is(err, model.ErrGameRecordNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnknownCommandError creates an error for an unrecognized wire command
func NewUnknownCommandError(command string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeUnknownCommand, "Unknown command: " + command}}
}

// NewInternalError creates a generic internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
