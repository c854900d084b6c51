package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/conclave-gg/conclave/internal/api/handler"
	"github.com/conclave-gg/conclave/internal/api/middleware"
	"github.com/conclave-gg/conclave/internal/api/response"
	"github.com/conclave-gg/conclave/internal/lobby"
	"github.com/conclave-gg/conclave/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger  *slog.Logger
	Manager *lobby.Manager
	Storage storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	lobbyHandler := handler.NewLobbyHandler(cfg.Manager, cfg.Storage, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.Storage)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Lobby routes
	api.HandleFunc("/lobbies", lobbyHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/lobbies/{code}", lobbyHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/lobbies/{code}/join-check", lobbyHandler.CheckJoin).Methods(http.MethodGet)
	api.HandleFunc("/lobbies/{code}/ws", lobbyHandler.Socket).Methods(http.MethodGet)
	api.HandleFunc("/lobbies/{code}/games", lobbyHandler.Records).Methods(http.MethodGet)

	// Archived game routes
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler(cfg.Manager)).Methods(http.MethodGet)

	return r
}

func healthHandler(manager *lobby.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{
			Status:  "ok",
			Lobbies: manager.Count(),
		})
	}
}
