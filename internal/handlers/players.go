package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) handleGetPlayers(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Game.State().Players)
}

func (h *Handlers) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	player, err := h.Game.AddPlayer(r.Context(), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, player)
}

func (h *Handlers) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Game.UpdatePlayerName(r.Context(), chi.URLParam(r, "id"), req.Name); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.Game.State().Players)
}

func (h *Handlers) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	if err := h.Game.RemovePlayer(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}
