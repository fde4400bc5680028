package api

import (
	"net/http"

	"github.com/avandijk/medstock/internal/model"
	"github.com/avandijk/medstock/internal/store"
)

// CategoriesHandler handles category endpoints.
type CategoriesHandler struct {
	Store *store.Store
}

type categoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.ListCategories(r.Context())
	if err != nil {
		serviceError(w, err, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	jsonResponse(w, http.StatusOK, categories)
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.Store.CreateCategory(r.Context(), req.Name, req.Icon)
	if err != nil {
		serviceError(w, err, "failed to create category")
		return
	}
	jsonResponse(w, http.StatusCreated, category)
}

// Delete handles DELETE /api/categories/{id}.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.Store.DeleteCategory(r.Context(), id); err != nil {
		serviceError(w, err, "failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
