package api

import (
	"net/http"

	"github.com/avandijk/medstock/internal/model"
	"github.com/avandijk/medstock/internal/store"
)

// ContactsHandler handles post contact endpoints.
type ContactsHandler struct {
	Store *store.Store
}

type createContactRequest struct {
	PostID     string `json:"post_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Active     *bool  `json:"active"`
}

type updateContactRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
	Active     *bool   `json:"active"`
}

// List handles GET /api/post-contacts.
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Store.ListContacts(r.Context(), r.URL.Query().Get("post_id"))
	if err != nil {
		serviceError(w, err, "failed to list contacts")
		return
	}
	if contacts == nil {
		contacts = []model.PostContact{}
	}
	jsonResponse(w, http.StatusOK, contacts)
}

// Create handles POST /api/post-contacts.
func (h *ContactsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	contact, err := h.Store.CreateContact(r.Context(), model.PostContact{
		PostID:     req.PostID,
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Active:     active,
	})
	if err != nil {
		serviceError(w, err, "failed to create contact")
		return
	}
	jsonResponse(w, http.StatusCreated, contact)
}

// Get handles GET /api/post-contacts/{id}.
func (h *ContactsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	contact, err := h.Store.GetContact(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to get contact")
		return
	}
	jsonResponse(w, http.StatusOK, contact)
}

// Update handles PATCH /api/post-contacts/{id}.
func (h *ContactsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	var req updateContactRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact, err := h.Store.GetContact(r.Context(), id)
	if err != nil {
		serviceError(w, err, "failed to get contact")
		return
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Department != nil {
		contact.Department = *req.Department
	}
	if req.Active != nil {
		contact.Active = *req.Active
	}

	updated, err := h.Store.UpdateContact(r.Context(), id, *contact)
	if err != nil {
		serviceError(w, err, "failed to update contact")
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/post-contacts/{id}.
func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	if err := h.Store.DeleteContact(r.Context(), id); err != nil {
		serviceError(w, err, "failed to delete contact")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
