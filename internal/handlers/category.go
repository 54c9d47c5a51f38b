package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/impostor-party/impostor/internal/services"
)

// importSizeLimit caps uploaded category snapshots at 1 MB
const importSizeLimit = 1 << 20

func (h *Handlers) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Category.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, categories)
}

func (h *Handlers) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := h.Category.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, cat)
}

func (h *Handlers) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	cat, err := h.Category.Create(r.Context(), services.CategoryDraft{
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
		IsEnabled:   req.IsEnabled,
		Difficulty:  req.Difficulty,
		Words:       req.Words,
		WordPairs:   req.WordPairs,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, cat)
}

func (h *Handlers) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	cat, err := h.Category.Update(r.Context(), chi.URLParam(r, "id"), services.CategoryUpdate{
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
		IsEnabled:   req.IsEnabled,
		Difficulty:  req.Difficulty,
		Words:       req.Words,
		WordPairs:   req.WordPairs,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, cat)
}

func (h *Handlers) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Category.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if !deleted {
		respondError(w, NotFound("Category not found or read-only"))
		return
	}
	respondDeleted(w)
}

func (h *Handlers) handleToggleCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	enabled, err := h.Category.ToggleEnabled(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ToggleResponse{ID: id, IsEnabled: enabled})
}

func (h *Handlers) handleDuplicateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryDuplicateRequest
	// Body is optional; an empty body means the default "(Copy)" name
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}
	}

	cat, err := h.Category.Duplicate(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, cat)
}

func (h *Handlers) handleExportCategories(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if raw := r.URL.Query().Get("ids"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			respondError(w, BadRequest("Invalid ids parameter"))
			return
		}
	}

	bundle, err := h.Category.Export(r.Context(), ids)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="categories.json"`)
	respondOK(w, bundle)
}

func (h *Handlers) handleImportCategories(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, importSizeLimit))
	if err != nil {
		respondError(w, BadRequest("Failed to read request body"))
		return
	}

	result, err := h.Category.Import(r.Context(), raw)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}
