package api

import (
	"net/http"

	"github.com/avandijk/medstock/internal/model"
	"github.com/avandijk/medstock/internal/store"
)

// LocationsHandler handles item location endpoints.
type LocationsHandler struct {
	Store *store.Store
}

type createLocationRequest struct {
	ItemID      int64  `json:"item_id"`
	PostID      string `json:"post_id"`
	CabinetID   int64  `json:"cabinet_id"`
	DrawerID    *int64 `json:"drawer_id"`
	ContactID   *int64 `json:"contact_id"`
	StockStatus string `json:"stock_status"`
}

type setStatusRequest struct {
	StockStatus string `json:"stock_status"`
}

// List handles GET /api/item-locations.
func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Store.ListItemLocations(r.Context())
	if err != nil {
		serviceError(w, err, "failed to list item locations")
		return
	}
	if locations == nil {
		locations = []model.ItemLocation{}
	}
	jsonResponse(w, http.StatusOK, locations)
}

// ListForItem handles GET /api/item-locations/{itemId}.
func (h *LocationsHandler) ListForItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "itemId")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	locations, err := h.Store.ListItemLocationsForItem(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to list item locations")
		return
	}
	if locations == nil {
		locations = []model.ItemLocation{}
	}
	jsonResponse(w, http.StatusOK, locations)
}

// Create handles POST /api/item-locations.
func (h *LocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	location, err := h.Store.CreateItemLocation(r.Context(), model.ItemLocation{
		ItemID:      req.ItemID,
		PostID:      req.PostID,
		CabinetID:   req.CabinetID,
		DrawerID:    req.DrawerID,
		ContactID:   req.ContactID,
		StockStatus: req.StockStatus,
	})
	if err != nil {
		serviceError(w, err, "failed to create item location")
		return
	}
	jsonResponse(w, http.StatusCreated, location)
}

// SetStatus handles PATCH /api/item-locations/{id}/status.
func (h *LocationsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	location, err := h.Store.SetStockStatus(r.Context(), id, req.StockStatus)
	if err != nil {
		serviceError(w, err, "failed to set stock status")
		return
	}
	jsonResponse(w, http.StatusOK, location)
}

// Delete handles DELETE /api/item-locations/{id}.
func (h *LocationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	if err := h.Store.DeleteItemLocation(r.Context(), id); err != nil {
		serviceError(w, err, "failed to delete item location")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
