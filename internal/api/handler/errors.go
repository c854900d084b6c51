package handler

import (
	"net/http"

	"github.com/conclave-gg/conclave/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeDuplicateConnection = apierr.CodeDuplicateConnection
	CodeUnknownConnection   = apierr.CodeUnknownConnection
	CodeDuplicateName       = apierr.CodeDuplicateName
	CodeLobbyFull           = apierr.CodeLobbyFull
	CodeGameInProgress      = apierr.CodeGameInProgress
	CodeNotEnoughPlayers    = apierr.CodeNotEnoughPlayers
	CodeTooManyPlayers      = apierr.CodeTooManyPlayers
	CodeAlreadyInGame       = apierr.CodeAlreadyInGame
	CodeNoActiveGame        = apierr.CodeNoActiveGame
	CodeLobbyNotFound       = apierr.CodeLobbyNotFound
	CodeGameNotFound        = apierr.CodeGameNotFound
	CodeUnknownCommand      = apierr.CodeUnknownCommand
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
