package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/solaropoly/internal/api/request"
	"github.com/mcoot/solaropoly/internal/api/response"
	"github.com/mcoot/solaropoly/internal/api/sse"
	"github.com/mcoot/solaropoly/internal/board"
	"github.com/mcoot/solaropoly/internal/dependencies/random"
	"github.com/mcoot/solaropoly/internal/middleware"
	"github.com/mcoot/solaropoly/internal/model"
	"github.com/mcoot/solaropoly/internal/services/game"
)

// SessionHandler handles session-related endpoints
type SessionHandler struct {
	gameController *game.Controller
	random         random.Random
	hubManager     *sse.HubManager
	broadcaster    *sse.Broadcaster
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(gameController *game.Controller, random random.Random, hubManager *sse.HubManager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		gameController: gameController,
		random:         random,
		hubManager:     hubManager,
		broadcaster:    sse.NewBroadcaster(hubManager, logger),
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	record, err := h.gameController.CreateSession(r.Context(), game.SessionConfig{
		BoardName:    req.Board,
		PlayerNames:  req.Players,
		StartBalance: req.StartBalance,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(record))
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.gameController.ListSessions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	summaries := make([]response.SessionSummary, len(records))
	for i, rec := range records {
		summaries[i] = response.SessionSummaryFromModel(rec)
	}
	response.JSON(w, http.StatusOK, summaries)
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	record, err := h.gameController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(record))
}

// Standings handles GET /api/v1/sessions/{id}/standings
func (h *SessionHandler) Standings(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	standings, err := h.gameController.Standings(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Standings{
		SessionID: string(id),
		Standings: standings,
	})
}

// TakeTurn handles POST /api/v1/sessions/{id}/turns
func (h *SessionHandler) TakeTurn(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.TakeTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	decider, ok := board.DeciderByName(req.Buy, h.random)
	if !ok {
		WriteError(w, fmt.Errorf("%w: %q", model.ErrInvalidDecider, req.Buy))
		return
	}

	result, err := h.gameController.TakeTurn(r.Context(), id, model.PlayerID(req.PlayerID), decider)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastTurn(id, result)
	response.JSON(w, http.StatusOK, response.Turn(*result))
}

// Quit handles POST /api/v1/sessions/{id}/players/{player_id}/quit
func (h *SessionHandler) Quit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.SessionID(vars["id"])
	playerID := model.PlayerID(vars["player_id"])

	record, err := h.gameController.Quit(r.Context(), id, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastSession(record)
	response.JSON(w, http.StatusOK, response.SessionFromModel(record))
}

// Events handles GET /api/v1/sessions/{id}/events, streaming turns and
// session changes until the game ends or the client disconnects
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	record, err := h.gameController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if record.State == model.SessionStateFinished {
		WriteError(w, model.ErrSessionOver)
		return
	}

	sse.ServeSSE(w, r, h.hubManager, id, middleware.GetRequestID(r.Context()))
}
