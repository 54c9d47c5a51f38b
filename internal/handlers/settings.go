package handlers

import (
	"net/http"
)

func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.templates.Index.Execute(w, nil)
}

// handleJoinQR serves the companion-screen join URL as a QR code image
func (h *Handlers) handleJoinQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Settings.JoinQRImage(r.Context())
	if err != nil {
		respondError(w, BadRequest("QR code unavailable: "+err.Error()))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang, _ := h.Settings.Language(ctx)
	baseURL, _ := h.Settings.GetBaseURL(ctx)

	respondOK(w, SettingsResponse{
		Language: lang,
		BaseURL:  baseURL,
	})
}

func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req AppSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ctx := r.Context()
	if req.Language != nil {
		if err := h.Settings.SetLanguage(ctx, *req.Language); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.BaseURL != nil {
		if err := h.Settings.SetBaseURL(ctx, *req.BaseURL); err != nil {
			respondError(w, err)
			return
		}
	}

	h.handleGetSettings(w, r)
}
