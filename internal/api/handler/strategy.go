package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/tictactoe-strategies/internal/api/apierr"
	"github.com/mcoot/tictactoe-strategies/internal/api/request"
	"github.com/mcoot/tictactoe-strategies/internal/api/response"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/game"
)

// StrategyHandler handles strategy listing and one-off suggestions
type StrategyHandler struct {
	gameController *game.Controller
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(gameController *game.Controller) *StrategyHandler {
	return &StrategyHandler{gameController: gameController}
}

// List handles GET /api/v1/strategies
func (h *StrategyHandler) List(w http.ResponseWriter, r *http.Request) {
	kinds := model.StrategyKinds()
	resp := response.StrategyList{
		Strategies: make([]response.Strategy, len(kinds)),
		Default:    string(model.DefaultStrategy),
	}
	for i, kind := range kinds {
		resp.Strategies[i] = response.StrategyFromModel(model.StrategyInfoFor(kind))
	}
	response.JSON(w, http.StatusOK, resp)
}

// Suggest handles POST /api/v1/suggest
func (h *StrategyHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req request.SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	board, err := model.ParseBoard(req.Board)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	mover, err := model.ParsePlayer(req.Mover)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	kind, err := model.ParseStrategyKind(req.Strategy)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	move, found, err := h.gameController.Suggest(board, mover, kind)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Suggestion{Move: move, Found: found, Strategy: string(kind)})
}
