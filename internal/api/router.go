package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-strategies/internal/api/handler"
	"github.com/mcoot/tictactoe-strategies/internal/api/middleware"
	"github.com/mcoot/tictactoe-strategies/internal/api/response"
	"github.com/mcoot/tictactoe-strategies/internal/events"
	"github.com/mcoot/tictactoe-strategies/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	HubManager     *events.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	strategyHandler := handler.NewStrategyHandler(cfg.GameController)
	sessionHandler := handler.NewSessionHandler(cfg.GameController, cfg.HubManager)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Strategy routes
	api.HandleFunc("/strategies", strategyHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/suggest", strategyHandler.Suggest).Methods(http.MethodPost)

	// Session routes
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sessions", sessionHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", sessionHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/moves", sessionHandler.Move).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/reset", sessionHandler.Reset).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/reset-scores", sessionHandler.ResetScores).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/beliefs", sessionHandler.Beliefs).Methods(http.MethodGet)

	// Event streams
	api.HandleFunc("/sessions/{id}/events", sessionHandler.Events).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/ws", sessionHandler.WebSocket).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
