package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Lokesh-1511/chain-reaction/internal/game"
	"github.com/Lokesh-1511/chain-reaction/internal/hub"
)

// Board defaults when the create request leaves them out, matching the
// classic 9x6 two-player setup.
const (
	defaultRows    = 9
	defaultCols    = 6
	defaultPlayers = 2
)

// API is the stateless HTTP surface: create, join, fetch. Everything
// real-time happens on the websocket side.
type API struct {
	Hub *hub.Hub
}

func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /game", a.handleCreate)
	mux.HandleFunc("POST /game/{id}/join", a.handleJoin)
	mux.HandleFunc("GET /game/{id}", a.handleGet)
	mux.HandleFunc("GET /health", a.handleHealth)
}

type createRequest struct {
	ID      string `json:"id,omitempty"`
	Mode    string `json:"mode"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Players int    `json:"players"`
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Row <= 0 {
		req.Row = defaultRows
	}
	if req.Col <= 0 {
		req.Col = defaultCols
	}
	if req.Players <= 0 {
		req.Players = defaultPlayers
	}

	g, err := a.Hub.Create(req.ID, game.Mode(req.Mode), req.Row, req.Col, req.Players)
	switch {
	case errors.Is(err, hub.ErrInvalidMode):
		writeError(w, http.StatusBadRequest, "Invalid mode")
		return
	case errors.Is(err, hub.ErrDuplicateID):
		writeError(w, http.StatusBadRequest, "Game ID already exists.")
		return
	case errors.Is(err, hub.ErrCapacity):
		writeError(w, http.StatusServiceUnavailable, "Too many games")
		return
	case err != nil:
		log.Printf("create game: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

type joinRequest struct {
	Username string `json:"username"`
}

type joinResponse struct {
	Game     game.Snapshot `json:"game"`
	PlayerID game.PlayerID `json:"playerId"`
	IsHost   bool          `json:"isHost"`
}

func (a *API) handleJoin(w http.ResponseWriter, r *http.Request) {
	g, err := a.Hub.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Game not found")
		return
	}
	var req joinRequest
	// Body is optional; an anonymous join is fine.
	_ = json.NewDecoder(r.Body).Decode(&req)

	id, isHost, err := g.Join(req.Username)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Game full")
		return
	}
	writeJSON(w, http.StatusOK, joinResponse{Game: g.Snapshot(), PlayerID: id, IsHost: isHost})
}

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	g, err := a.Hub.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Game not found")
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"service":   "chain-reaction-backend",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
