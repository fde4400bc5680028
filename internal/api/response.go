package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/avandijk/medstock/internal/store"
	"github.com/avandijk/medstock/internal/supply"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target, rejecting
// unknown fields so malformed shapes never reach the storage layer.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}

// serviceError maps storage and notification errors onto the HTTP taxonomy:
// validation 400, not found 404, conflict 409, everything else 500 with the
// fallback message.
func serviceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case store.IsValidation(err), errors.Is(err, supply.ErrNotNeeded):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrConflict),
		errors.Is(err, supply.ErrNoContact),
		errors.Is(err, supply.ErrNoAlertEmail):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		slog.Error(fallback, "error", err)
		jsonError(w, http.StatusInternalServerError, fallback)
	}
}
