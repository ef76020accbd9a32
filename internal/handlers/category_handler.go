package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"erpBack/internal/models"
	"erpBack/internal/services"
)

type CategoryHandler struct {
	Service *services.CategoryService
	Log     zerolog.Logger
}

// GetAllCategories refreshes the category cache and returns it. A failed
// refresh still answers with the previous list when there is one.
func (h *CategoryHandler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories(r.Context())
	if err != nil {
		if len(categories) == 0 {
			writeError(w, r, h.Log, err)
			return
		}
		h.Log.Warn().Err(err).Msg("serving stale categories")
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing category ID", http.StatusBadRequest)
		return
	}

	category, err := h.Service.GetCategoryByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input models.CategoryInput
	if !decodeBody(w, r, &input) {
		return
	}

	category, err := h.Service.CreateCategory(r.Context(), input)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing category ID", http.StatusBadRequest)
		return
	}

	var input models.CategoryInput
	if !decodeBody(w, r, &input) {
		return
	}

	category, err := h.Service.UpdateCategory(r.Context(), id, input)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing category ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddAttribute applies one addition to the attribute list being edited.
func (h *CategoryHandler) AddAttribute(w http.ResponseWriter, r *http.Request) {
	var edit models.AttributeEdit
	if !decodeBody(w, r, &edit) {
		return
	}

	items, err := h.Service.AddAttribute(edit)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"attributes": items})
}

// RemoveAttribute applies one removal to the attribute list being edited.
func (h *CategoryHandler) RemoveAttribute(w http.ResponseWriter, r *http.Request) {
	var edit models.AttributeEdit
	if !decodeBody(w, r, &edit) {
		return
	}

	items, err := h.Service.RemoveAttribute(edit)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"attributes": items})
}
