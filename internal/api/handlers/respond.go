package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/velann/socialize-be/internal/services"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"message": message, "success": false})
}

// statusForError translates service error kinds to HTTP status codes. The
// services own the taxonomy; only this layer knows about transport codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrAlreadyLiked):
		return http.StatusConflict
	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidOrExpiredToken):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotPostAuthor):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// messageForError gives the stable, generic message for an error kind.
// Internal details never reach the response payload.
func messageForError(err error) string {
	if status := statusForError(err); status == http.StatusInternalServerError {
		return "Something went wrong. Please try again later."
	}
	return err.Error()
}
