// Package handler implements the API endpoints.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vovakirdan/t2048/internal/api/apierr"
	"github.com/vovakirdan/t2048/internal/api/request"
	"github.com/vovakirdan/t2048/internal/api/response"
	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/session"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	sessions *session.Manager
}

// NewGameHandler creates a new game handler
func NewGameHandler(sessions *session.Manager) *GameHandler {
	return &GameHandler{sessions: sessions}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	v, err := h.sessions.Create(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.GameFromView(v))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.sessions.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromView(v))
}

// Move handles POST /api/v1/games/{id}/moves
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.Move
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	dir, err := t2048.ParseDirection(req.Direction)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	v, moved, err := h.sessions.Move(r.Context(), mux.Vars(r)["id"], dir)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp := response.GameFromView(v)
	resp.Moved = &moved
	response.JSON(w, http.StatusOK, resp)
}

// Undo handles POST /api/v1/games/{id}/undo
func (h *GameHandler) Undo(w http.ResponseWriter, r *http.Request) {
	v, undone, err := h.sessions.Undo(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp := response.GameFromView(v)
	resp.Undone = &undone
	response.JSON(w, http.StatusOK, resp)
}

// NewGame handles POST /api/v1/games/{id}/new
func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	v, err := h.sessions.NewGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromView(v))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Best handles GET /api/v1/best
func (h *GameHandler) Best(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Best{Best: h.sessions.Best()})
}

// Health handles GET /api/v1/health
func (h *GameHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Sessions: h.sessions.Len()})
}
