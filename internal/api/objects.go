package api

import (
	"io"
	"net/http"

	"github.com/avandijk/medstock/internal/imaging"
	"github.com/avandijk/medstock/internal/store"
)

// maxPhotoBytes limits photo uploads to 5 MB.
const maxPhotoBytes = 5 << 20

// ObjectsHandler handles item photo storage endpoints. The flow mirrors a
// pre-signed object-storage upload: reserve a path, upload to it, then point
// the item's photo_path at it.
type ObjectsHandler struct {
	Store *store.Store
}

// NewUpload handles POST /api/objects/upload.
func (h *ObjectsHandler) NewUpload(w http.ResponseWriter, r *http.Request) {
	id, err := h.Store.CreateObject(r.Context())
	if err != nil {
		serviceError(w, err, "failed to create upload")
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]string{
		"upload_url": "/objects/upload/" + id,
		"path":       "/objects/" + id,
	})
}

// Put handles PUT /objects/upload/{id}.
func (h *ObjectsHandler) Put(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo too large or unreadable")
		return
	}

	photo, err := imaging.Normalize(data)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Store.PutObject(r.Context(), id, photo.Data, photo.MIME); err != nil {
		serviceError(w, err, "failed to store photo")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"path": "/objects/" + id})
}

// Get handles GET /objects/{id}.
func (h *ObjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, mime, err := h.Store.GetObject(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err, "failed to get photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
