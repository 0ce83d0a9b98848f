package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/velann/socialize-be/internal/auth"
	"github.com/velann/socialize-be/internal/services"
)

// ProfileHandler handles HTTP requests for profile management.
type ProfileHandler struct {
	service services.ProfileServiceProvider
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service services.ProfileServiceProvider) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// ProfilePayload defines the structure for profile create/update requests.
type ProfilePayload struct {
	Avatar string            `json:"avatar"`
	Social map[string]string `json:"social"`
}

// Create creates the profile of the authenticated account.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve account from token")
		return
	}

	var payload ProfilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.service.CreateProfile(r.Context(), claims.AccountID, payload.Avatar, payload.Social)
	if err != nil {
		log.Error().Err(err).Str("account_id", claims.AccountID).Msg("Failed to create profile")
		respondError(w, http.StatusBadRequest, "Unable to create your profile.")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Profile created successfully",
		"profile": profile,
		"success": true,
	})
}

// Update replaces the profile of the authenticated account.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve account from token")
		return
	}

	var payload ProfilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), claims.AccountID, payload.Avatar, payload.Social)
	if err != nil {
		respondError(w, statusForError(err), messageForError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Your profile is now updated.",
		"profile": profile,
		"success": true,
	})
}

// GetMine returns the profile of the authenticated account.
func (h *ProfileHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve account from token")
		return
	}

	profile, err := h.service.GetProfileByAccountID(r.Context(), claims.AccountID)
	if err != nil {
		respondError(w, statusForError(err), "Your profile is not available.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"profile": profile,
		"success": true,
	})
}

// GetByUsername returns a public profile by account username.
func (h *ProfileHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, account, err := h.service.GetProfileByUsername(r.Context(), username)
	if err != nil {
		respondError(w, statusForError(err), messageForError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"profile": profile,
		"account": account,
		"success": true,
	})
}
