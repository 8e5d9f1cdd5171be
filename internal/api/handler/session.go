package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-strategies/internal/api/apierr"
	"github.com/mcoot/tictactoe-strategies/internal/api/request"
	"github.com/mcoot/tictactoe-strategies/internal/api/response"
	"github.com/mcoot/tictactoe-strategies/internal/events"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/game"
)

// SessionHandler handles play sessions and their event streams
type SessionHandler struct {
	gameController *game.Controller
	hubManager     *events.HubManager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(gameController *game.Controller, hubManager *events.HubManager) *SessionHandler {
	return &SessionHandler{
		gameController: gameController,
		hubManager:     hubManager,
	}
}

func sessionID(r *http.Request) model.SessionID {
	return model.SessionID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
			return
		}
	}

	kind, err := model.ParseStrategyKind(req.Strategy)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	human := model.PlayerX
	if req.HumanPlayer != "" {
		if human, err = model.ParsePlayer(req.HumanPlayer); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}

	session, err := h.gameController.NewSession(r.Context(), kind, human)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.gameController.ListSessions(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionListFromModel(summaries))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.gameController.GetSession(r.Context(), sessionID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Delete handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.DeleteSession(r.Context(), sessionID(r)); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Move handles POST /api/v1/sessions/{id}/moves
func (h *SessionHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Cell == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("cell is required"))
		return
	}

	session, err := h.gameController.HumanMove(r.Context(), sessionID(r), *req.Cell)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Reset handles POST /api/v1/sessions/{id}/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := h.gameController.Reset(r.Context(), sessionID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// ResetScores handles POST /api/v1/sessions/{id}/reset-scores
func (h *SessionHandler) ResetScores(w http.ResponseWriter, r *http.Request) {
	session, err := h.gameController.ResetScores(r.Context(), sessionID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Beliefs handles GET /api/v1/sessions/{id}/beliefs
func (h *SessionHandler) Beliefs(w http.ResponseWriter, r *http.Request) {
	beliefs, err := h.gameController.Beliefs(r.Context(), sessionID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BeliefsFromModel(beliefs))
}

// Events handles GET /api/v1/sessions/{id}/events (SSE)
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	hub, ok := h.hub(w, r)
	if !ok {
		return
	}
	events.ServeSSE(w, r, hub)
}

// WebSocket handles GET /api/v1/sessions/{id}/ws
func (h *SessionHandler) WebSocket(w http.ResponseWriter, r *http.Request) {
	hub, ok := h.hub(w, r)
	if !ok {
		return
	}
	events.ServeWS(w, r, hub)
}

// hub returns the event hub of an existing session
func (h *SessionHandler) hub(w http.ResponseWriter, r *http.Request) (*events.Hub, bool) {
	id := sessionID(r)
	if _, err := h.gameController.GetSession(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return nil, false
	}
	return h.hubManager.GetOrCreateHub(id), true
}
