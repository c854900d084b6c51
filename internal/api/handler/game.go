package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/conclave-gg/conclave/internal/api/response"
	"github.com/conclave-gg/conclave/internal/model"
	"github.com/conclave-gg/conclave/internal/storage"
)

// GameHandler handles archived game endpoints
type GameHandler struct {
	storage storage.Storage
}

// NewGameHandler creates a new game handler
func NewGameHandler(store storage.Storage) *GameHandler {
	return &GameHandler{storage: store}
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	record, err := h.storage.GetGameRecord(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameRecordFromModel(record))
}
