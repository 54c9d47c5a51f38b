package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Static files (served from embedded filesystem)
	r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))

	// Companion screen
	r.Get("/", h.handleIndex)

	// WebSocket
	r.Get("/ws", h.Hub.ServeWs)

	// Join QR code
	r.Get("/qr", h.handleJoinQR)

	// Categories
	r.Get("/api/categories", h.handleGetCategories)
	r.Post("/api/categories", h.handleCreateCategory)
	r.Get("/api/categories/export", h.handleExportCategories)
	r.Post("/api/categories/import", h.handleImportCategories)
	r.Get("/api/categories/{id}", h.handleGetCategory)
	r.Put("/api/categories/{id}", h.handleUpdateCategory)
	r.Delete("/api/categories/{id}", h.handleDeleteCategory)
	r.Post("/api/categories/{id}/toggle", h.handleToggleCategory)
	r.Post("/api/categories/{id}/duplicate", h.handleDuplicateCategory)

	// Game state and phase actions
	r.Get("/api/game", h.handleGetGameState)
	r.Put("/api/game/settings", h.handleUpdateGameSettings)
	r.Post("/api/game/start", h.handleStartGame)
	r.Post("/api/game/confirm-role", h.handleConfirmRole)
	r.Post("/api/game/next-round", h.handleNextRound)
	r.Post("/api/game/start-discussion", h.handleStartDiscussion)
	r.Post("/api/game/complete-discussion", h.handleCompleteDiscussion)
	r.Post("/api/game/vote", h.handleCastVote)
	r.Post("/api/game/impostor-guess", h.handleImpostorGuess)
	r.Post("/api/game/reset", h.handleResetGame)
	r.Post("/api/game/play-again", h.handlePlayAgain)
	r.Post("/api/game/timer/pause", h.handlePauseTimer)
	r.Post("/api/game/timer/resume", h.handleResumeTimer)

	// Roster
	r.Get("/api/players", h.handleGetPlayers)
	r.Post("/api/players", h.handleAddPlayer)
	r.Put("/api/players/{id}", h.handleUpdatePlayer)
	r.Delete("/api/players/{id}", h.handleRemovePlayer)

	// App settings
	r.Get("/api/settings", h.handleGetSettings)
	r.Put("/api/settings", h.handleUpdateSettings)

	return r
}
