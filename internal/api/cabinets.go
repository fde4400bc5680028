package api

import (
	"net/http"

	"github.com/avandijk/medstock/internal/model"
	"github.com/avandijk/medstock/internal/store"
)

// CabinetsHandler handles cabinet, drawer and placement endpoints.
type CabinetsHandler struct {
	Store *store.Store
}

type cabinetRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Color        string `json:"color"`
	Description  string `json:"description"`
	Location     string `json:"location"`
}

type updateCabinetRequest struct {
	Name         *string `json:"name"`
	Abbreviation *string `json:"abbreviation"`
	Color        *string `json:"color"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
}

// List handles GET /api/cabinets.
func (h *CabinetsHandler) List(w http.ResponseWriter, r *http.Request) {
	cabinets, err := h.Store.ListCabinets(r.Context())
	if err != nil {
		serviceError(w, err, "failed to list cabinets")
		return
	}
	if cabinets == nil {
		cabinets = []model.Cabinet{}
	}
	jsonResponse(w, http.StatusOK, cabinets)
}

// Create handles POST /api/cabinets.
func (h *CabinetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cabinetRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cabinet, err := h.Store.CreateCabinet(r.Context(), model.Cabinet{
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
		Color:        req.Color,
		Description:  req.Description,
		Location:     req.Location,
	})
	if err != nil {
		serviceError(w, err, "failed to create cabinet")
		return
	}
	jsonResponse(w, http.StatusCreated, cabinet)
}

// Get handles GET /api/cabinets/{id}.
func (h *CabinetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid cabinet id")
		return
	}

	cabinet, err := h.Store.GetCabinet(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to get cabinet")
		return
	}
	jsonResponse(w, http.StatusOK, cabinet)
}

// Update handles PATCH /api/cabinets/{id}.
func (h *CabinetsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid cabinet id")
		return
	}

	var req updateCabinetRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cabinet, err := h.Store.GetCabinet(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to get cabinet")
		return
	}

	if req.Name != nil {
		cabinet.Name = *req.Name
	}
	if req.Abbreviation != nil {
		cabinet.Abbreviation = *req.Abbreviation
	}
	if req.Color != nil {
		cabinet.Color = *req.Color
	}
	if req.Description != nil {
		cabinet.Description = *req.Description
	}
	if req.Location != nil {
		cabinet.Location = *req.Location
	}

	updated, err := h.Store.UpdateCabinet(r.Context(), id, *cabinet)
	if err != nil {
		serviceError(w, err, "failed to update cabinet")
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/cabinets/{id}. Cabinets still referenced by
// item locations are not deletable.
func (h *CabinetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid cabinet id")
		return
	}

	if err := h.Store.DeleteCabinet(r.Context(), id); err != nil {
		serviceError(w, err, "failed to delete cabinet")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/cabinets/summary.
func (h *CabinetsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Store.CabinetSummaries(r.Context())
	if err != nil {
		serviceError(w, err, "failed to summarize cabinets")
		return
	}
	if summaries == nil {
		summaries = []model.CabinetSummary{}
	}
	jsonResponse(w, http.StatusOK, summaries)
}

type drawerRequest struct {
	Name string `json:"name"`
}

// ListDrawers handles GET /api/cabinets/{id}/drawers.
func (h *CabinetsHandler) ListDrawers(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid cabinet id")
		return
	}

	drawers, err := h.Store.ListDrawers(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to list drawers")
		return
	}
	if drawers == nil {
		drawers = []model.Drawer{}
	}
	jsonResponse(w, http.StatusOK, drawers)
}

// CreateDrawer handles POST /api/cabinets/{id}/drawers.
func (h *CabinetsHandler) CreateDrawer(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid cabinet id")
		return
	}

	var req drawerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	drawer, err := h.Store.CreateDrawer(r.Context(), id, req.Name)
	if err != nil {
		serviceError(w, err, "failed to create drawer")
		return
	}
	jsonResponse(w, http.StatusCreated, drawer)
}

// DeleteDrawer handles DELETE /api/drawers/{id}.
func (h *CabinetsHandler) DeleteDrawer(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid drawer id")
		return
	}

	if err := h.Store.DeleteDrawer(r.Context(), id); err != nil {
		serviceError(w, err, "failed to delete drawer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type cabinetLocationRequest struct {
	CabinetID   int64  `json:"cabinet_id"`
	PostID      string `json:"post_id"`
	SubLocation string `json:"sub_location"`
}

// ListLocations handles GET /api/cabinet-locations.
func (h *CabinetsHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Store.ListCabinetLocations(r.Context(), r.URL.Query().Get("post_id"))
	if err != nil {
		serviceError(w, err, "failed to list cabinet locations")
		return
	}
	if locations == nil {
		locations = []model.CabinetLocation{}
	}
	jsonResponse(w, http.StatusOK, locations)
}

// CreateLocation handles POST /api/cabinet-locations.
func (h *CabinetsHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req cabinetLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	location, err := h.Store.CreateCabinetLocation(r.Context(), model.CabinetLocation{
		CabinetID:   req.CabinetID,
		PostID:      req.PostID,
		SubLocation: req.SubLocation,
	})
	if err != nil {
		serviceError(w, err, "failed to create cabinet location")
		return
	}
	jsonResponse(w, http.StatusCreated, location)
}

// DeleteLocation handles DELETE /api/cabinet-locations/{id}.
func (h *CabinetsHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid cabinet location id")
		return
	}

	if err := h.Store.DeleteCabinetLocation(r.Context(), id); err != nil {
		serviceError(w, err, "failed to delete cabinet location")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
