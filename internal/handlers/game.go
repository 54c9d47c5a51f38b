package handlers

import (
	"net/http"

	"github.com/impostor-party/impostor/internal/services"
)

func (h *Handlers) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Game.State())
}

func (h *Handlers) handleUpdateGameSettings(w http.ResponseWriter, r *http.Request) {
	var req GameSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	settings, err := h.Game.UpdateSettings(r.Context(), services.SettingsUpdate{
		GameMode:           req.GameMode,
		IncludeConfused:    req.IncludeConfused,
		NumPlayers:         req.NumPlayers,
		NumRounds:          req.NumRounds,
		DiscussionTime:     req.DiscussionTime,
		EnabledCategories:  req.EnabledCategories,
		AllowImpostorGuess: req.AllowImpostorGuess,
		Theme:              req.Theme,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, settings)
}

func (h *Handlers) handleStartGame(w http.ResponseWriter, r *http.Request) {
	state, err := h.Game.StartGame(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handleConfirmRole(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	state, err := h.Game.ConfirmRoleSeen(r.Context(), req.PlayerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handleNextRound(w http.ResponseWriter, r *http.Request) {
	state, err := h.Game.AdvanceRound(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handleStartDiscussion(w http.ResponseWriter, r *http.Request) {
	state, err := h.Game.StartDiscussion(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handleCompleteDiscussion(w http.ResponseWriter, r *http.Request) {
	state, err := h.Game.CompleteDiscussion(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	state, err := h.Game.CastVote(r.Context(), req.PlayerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handleImpostorGuess(w http.ResponseWriter, r *http.Request) {
	var req ImpostorGuessRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	state, err := h.Game.ResolveImpostorGuess(r.Context(), req.Correct)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handleResetGame(w http.ResponseWriter, r *http.Request) {
	state, err := h.Game.ResetGame(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handlePlayAgain(w http.ResponseWriter, r *http.Request) {
	state, err := h.Game.PlayAgain(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handlePauseTimer(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Game.PauseTimer())
}

func (h *Handlers) handleResumeTimer(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Game.ResumeTimer())
}
