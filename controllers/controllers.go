package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"social_server/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the workflow error kinds to HTTP statuses. Anything
// unrecognized is an internal error.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), map[string]string{"error": err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotAuthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrSelfAction),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrAlreadyExists),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrAlreadyRequested),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrOwnerCannotLeave),
		errors.Is(err, services.ErrBlocked):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
