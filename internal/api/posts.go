package api

import (
	"net/http"

	"github.com/avandijk/medstock/internal/model"
	"github.com/avandijk/medstock/internal/store"
)

// PostsHandler handles ambulance post endpoints.
type PostsHandler struct {
	Store *store.Store
}

type createPostRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Active   *bool  `json:"active"`
}

type updatePostRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Active   *bool   `json:"active"`
}

// List handles GET /api/ambulance-posts.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Store.ListPosts(r.Context())
	if err != nil {
		serviceError(w, err, "failed to list posts")
		return
	}
	if posts == nil {
		posts = []model.AmbulancePost{}
	}
	jsonResponse(w, http.StatusOK, posts)
}

// Create handles POST /api/ambulance-posts.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	post, err := h.Store.CreatePost(r.Context(), model.AmbulancePost{
		ID:       req.ID,
		Name:     req.Name,
		Location: req.Location,
		Active:   active,
	})
	if err != nil {
		serviceError(w, err, "failed to create post")
		return
	}
	jsonResponse(w, http.StatusCreated, post)
}

// Get handles GET /api/ambulance-posts/{id}.
func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.Store.GetPost(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err, "failed to get post")
		return
	}
	jsonResponse(w, http.StatusOK, post)
}

// Update handles PATCH /api/ambulance-posts/{id}.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.Store.GetPost(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to get post")
		return
	}

	if req.Name != nil {
		post.Name = *req.Name
	}
	if req.Location != nil {
		post.Location = *req.Location
	}
	if req.Active != nil {
		post.Active = *req.Active
	}

	updated, err := h.Store.UpdatePost(r.Context(), id, post.Name, post.Location, post.Active)
	if err != nil {
		serviceError(w, err, "failed to update post")
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/ambulance-posts/{id}.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeletePost(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, err, "failed to delete post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OrderedCabinets handles GET /api/ambulance-posts/{id}/cabinets.
func (h *PostsHandler) OrderedCabinets(w http.ResponseWriter, r *http.Request) {
	cabinets, err := h.Store.OrderedCabinetsForPost(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err, "failed to list post cabinets")
		return
	}
	if cabinets == nil {
		cabinets = []model.Cabinet{}
	}
	jsonResponse(w, http.StatusOK, cabinets)
}

type cabinetOrderRequest struct {
	CabinetIDs []int64 `json:"cabinet_ids"`
}

// SetCabinetOrder handles PUT /api/ambulance-posts/{id}/cabinet-order.
func (h *PostsHandler) SetCabinetOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req cabinetOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Store.SetCabinetOrder(r.Context(), id, req.CabinetIDs); err != nil {
		serviceError(w, err, "failed to set cabinet order")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "cabinet order updated"})
}
