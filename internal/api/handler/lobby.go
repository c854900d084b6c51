package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/conclave-gg/conclave/internal/api/apierr"
	"github.com/conclave-gg/conclave/internal/api/response"
	"github.com/conclave-gg/conclave/internal/lobby"
	"github.com/conclave-gg/conclave/internal/model"
	"github.com/conclave-gg/conclave/internal/storage"
	"github.com/conclave-gg/conclave/internal/ws"
)

// LobbyHandler handles lobby endpoints
type LobbyHandler struct {
	manager *lobby.Manager
	storage storage.Storage
	logger  *slog.Logger
}

// NewLobbyHandler creates a new lobby handler
func NewLobbyHandler(manager *lobby.Manager, store storage.Storage, logger *slog.Logger) *LobbyHandler {
	return &LobbyHandler{
		manager: manager,
		storage: store,
		logger:  logger,
	}
}

// Create handles POST /api/v1/lobbies
func (h *LobbyHandler) Create(w http.ResponseWriter, r *http.Request) {
	lob := h.manager.CreateLobby()
	response.JSON(w, http.StatusCreated, response.LobbyFromInfo(lob.Info()))
}

// Get handles GET /api/v1/lobbies/{code}
func (h *LobbyHandler) Get(w http.ResponseWriter, r *http.Request) {
	lob, err := h.manager.GetLobby(lobbyCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LobbyFromInfo(lob.Info()))
}

// CheckJoin handles GET /api/v1/lobbies/{code}/join-check
// Reports whether the given name could join right now, without joining
func (h *LobbyHandler) CheckJoin(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		WriteError(w, NewInvalidRequestError("name query parameter is required"))
		return
	}

	lob, err := h.manager.GetLobby(lobbyCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	verdict := response.JoinCheck{CanJoin: true}
	if err := lob.CheckJoin(name); err != nil {
		_, apiErr := apierr.Classify(err)
		verdict = response.JoinCheck{CanJoin: false, Reason: apiErr.Code}
	}

	response.JSON(w, http.StatusOK, verdict)
}

// Records handles GET /api/v1/lobbies/{code}/games
// Records outlive their lobby, so the lobby does not need to be live
func (h *LobbyHandler) Records(w http.ResponseWriter, r *http.Request) {
	records, err := h.storage.ListGameRecords(r.Context(), lobbyCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameRecordsFromModel(records))
}

// Socket handles GET /api/v1/lobbies/{code}/ws
// Upgrades the request to a WebSocket and joins the lobby under name
func (h *LobbyHandler) Socket(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		WriteError(w, NewInvalidRequestError("name query parameter is required"))
		return
	}

	lob, err := h.manager.GetLobby(lobbyCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	ws.Serve(w, r, h.manager, lob, name, h.logger)
}

// lobbyCode extracts the lobby code route variable, normalized to uppercase
func lobbyCode(r *http.Request) model.LobbyCode {
	return model.LobbyCode(strings.ToUpper(strings.TrimSpace(mux.Vars(r)["code"])))
}
