package api

import (
	"net/http"

	"github.com/avandijk/medstock/internal/model"
	"github.com/avandijk/medstock/internal/supply"
)

// SupplyHandler handles restock notification endpoints.
type SupplyHandler struct {
	Service *supply.Service
}

// SendRequest handles POST /api/supply-request/{locationId}.
func (h *SupplyHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "locationId")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	receipt, err := h.Service.SendRequest(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to send supply request, please retry")
		return
	}
	jsonResponse(w, http.StatusCreated, receipt)
}

// RequestStatus handles GET /api/item-locations/{id}/request-status.
func (h *SupplyHandler) RequestStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	status, err := h.Service.Status(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to get request status")
		return
	}
	jsonResponse(w, http.StatusOK, status)
}

// Reset handles POST /api/item-locations/{id}/reset.
func (h *SupplyHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	location, err := h.Service.Reset(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to reset stock status")
		return
	}
	jsonResponse(w, http.StatusOK, location)
}

type sendWarningRequest struct {
	LocationID  int64  `json:"location_id"`
	StockStatus string `json:"stock_status"`
}

// SendWarning handles POST /api/send-warning-email/{itemId}.
func (h *SupplyHandler) SendWarning(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "itemId")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req sendWarningRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.LocationID <= 0 {
		jsonError(w, http.StatusBadRequest, "location_id required")
		return
	}
	if req.StockStatus == "" {
		req.StockStatus = model.StockOutOfStock
	}
	if !model.NeedsSupply(req.StockStatus) {
		jsonError(w, http.StatusBadRequest, "stock_status must be low-stock or out-of-stock")
		return
	}

	receipt, err := h.Service.SendWarning(r.Context(), id, req.LocationID, req.StockStatus)
	if err != nil {
		serviceError(w, err, "failed to send warning email, please retry")
		return
	}
	jsonResponse(w, http.StatusCreated, receipt)
}

type markRequest struct {
	LocationID *int64 `json:"location_id"`
}

func (h *SupplyHandler) mark(w http.ResponseWriter, r *http.Request, status string) {
	id, ok := itemID(r, "itemId")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	// An empty body means "all locations of the item".
	var req markRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	locations, err := h.Service.MarkItem(r.Context(), id, req.LocationID, status)
	if err != nil {
		serviceError(w, err, "failed to mark stock status")
		return
	}
	jsonResponse(w, http.StatusOK, locations)
}

// MarkOutOfStock handles POST /api/items/{itemId}/mark-out-of-stock.
func (h *SupplyHandler) MarkOutOfStock(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, model.StockOutOfStock)
}

// MarkLowStock handles POST /api/items/{itemId}/mark-low-stock.
func (h *SupplyHandler) MarkLowStock(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, model.StockLowStock)
}
