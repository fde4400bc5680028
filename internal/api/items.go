package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avandijk/medstock/internal/model"
	"github.com/avandijk/medstock/internal/store"
)

// ItemsHandler handles catalog item endpoints.
type ItemsHandler struct {
	Store *store.Store
}

type createItemRequest struct {
	Name              string     `json:"name"`
	Category          string     `json:"category"`
	Description       string     `json:"description"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	AlertEmail        string     `json:"alert_email"`
	Discontinued      bool       `json:"discontinued"`
	ReplacementItemID *int64     `json:"replacement_item_id"`
}

type updateItemRequest struct {
	Name              *string    `json:"name"`
	Category          *string    `json:"category"`
	Description       *string    `json:"description"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	AlertEmail        *string    `json:"alert_email"`
	PhotoPath         *string    `json:"photo_path"`
	Discontinued      *bool      `json:"discontinued"`
	ReplacementItemID *int64     `json:"replacement_item_id"`
}

func itemID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil
}

// List handles GET /api/medical-items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListItems(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		serviceError(w, err, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/medical-items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Store.CreateItem(r.Context(), model.Item{
		Name:              req.Name,
		Category:          req.Category,
		Description:       req.Description,
		ExpiryDate:        req.ExpiryDate,
		AlertEmail:        req.AlertEmail,
		Discontinued:      req.Discontinued,
		ReplacementItemID: req.ReplacementItemID,
	})
	if err != nil {
		serviceError(w, err, "failed to create item")
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/medical-items/{id}. The response includes the item's
// locations so the detail dialog needs a single request.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.Store.GetItem(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to get item")
		return
	}

	locations, err := h.Store.ListItemLocationsForItem(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to get item locations")
		return
	}
	if locations == nil {
		locations = []model.ItemLocation{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"item":      item,
		"locations": locations,
	})
}

// Update handles PATCH /api/medical-items/{id}. Only the fields present in
// the body change.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Store.GetItem(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to get item")
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ExpiryDate != nil {
		item.ExpiryDate = req.ExpiryDate
	}
	if req.AlertEmail != nil {
		item.AlertEmail = *req.AlertEmail
	}
	if req.Discontinued != nil {
		item.Discontinued = *req.Discontinued
	}
	if req.ReplacementItemID != nil {
		item.ReplacementItemID = req.ReplacementItemID
	}

	updated, err := h.Store.UpdateItem(r.Context(), id, *item)
	if err != nil {
		serviceError(w, err, "failed to update item")
		return
	}

	if req.PhotoPath != nil {
		if err := h.Store.SetItemPhoto(r.Context(), id, *req.PhotoPath); err != nil {
			serviceError(w, err, "failed to set item photo")
			return
		}
		updated.PhotoPath = *req.PhotoPath
	}

	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/medical-items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Store.DeleteItem(r.Context(), id); err != nil {
		serviceError(w, err, "failed to delete item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SupplyRequests handles GET /api/medical-items/{id}/supply-requests.
func (h *ItemsHandler) SupplyRequests(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	requests, err := h.Store.ListSupplyRequestsForItem(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to list supply requests")
		return
	}
	if requests == nil {
		requests = []model.SupplyRequest{}
	}
	jsonResponse(w, http.StatusOK, requests)
}
