package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/velann/socialize-be/internal/auth"
	"github.com/velann/socialize-be/internal/services"
	"github.com/velann/socialize-be/internal/validation"
)

// AccountHandler handles HTTP requests for the account lifecycle.
type AccountHandler struct {
	service services.AccountServiceProvider
	ttl     time.Duration
}

// NewAccountHandler creates a new AccountHandler. ttl controls the session
// cookie lifetime and should match the signer's.
func NewAccountHandler(service services.AccountServiceProvider, ttl time.Duration) *AccountHandler {
	return &AccountHandler{service: service, ttl: ttl}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordPayload defines the structure for reset requests.
type ForgotPasswordPayload struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordPayload defines the structure for reset completions.
type ResetPasswordPayload struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// Register handles new account registration.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid registration fields")
		return
	}

	account, err := h.service.Register(r.Context(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register account")
		respondError(w, statusForError(err), messageForError(err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Your account was created. Please verify your email address.",
		"account": account.Public(),
		"success": true,
	})
}

// Verify consumes a verification token from the URL.
func (h *AccountHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	account, err := h.service.VerifyByToken(r.Context(), token)
	if err != nil {
		respondError(w, statusForError(err), messageForError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Your account is now verified.",
		"account": account.Public(),
		"success": true,
	})
}

// Login handles authentication and session token issuance.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid login fields")
		return
	}

	token, account, err := h.service.Authenticate(r.Context(), payload.Username, payload.Password)
	if err != nil {
		// Unknown username and wrong password both answer 401, so the
		// response does not reveal which accounts exist. Anything else,
		// such as a store outage, keeps its own status.
		if errors.Is(err, services.ErrAccountNotFound) || errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to authenticate account")
		respondError(w, statusForError(err), messageForError(err))
		return
	}

	isProd := os.Getenv("APP_ENV") == "production"
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.ttl),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"token":   token,
		"account": account.Public(),
		"success": true,
	})
}

// ForgotPassword opens a password reset window for the given email.
func (h *AccountHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload ForgotPasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), payload.Email); err != nil {
		respondError(w, statusForError(err), messageForError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "A password reset link was sent to your email address.",
		"success": true,
	})
}

// ResetPassword completes a password reset with a token.
func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload ResetPasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid reset fields")
		return
	}

	account, err := h.service.CompleteReset(r.Context(), payload.Token, payload.NewPassword)
	if err != nil {
		respondError(w, statusForError(err), messageForError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Your password was reset. Please log in with your new password.",
		"account": account.Public(),
		"success": true,
	})
}

// GetMe returns the authenticated account from the session token.
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve account claims from context")
		respondError(w, http.StatusInternalServerError, "Could not retrieve account from token")
		return
	}

	account, err := h.service.GetAccountByID(r.Context(), claims.AccountID)
	if err != nil {
		log.Warn().Err(err).Str("account_id", claims.AccountID).Msg("Account from token not found")
		respondError(w, statusForError(err), messageForError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"account": account.Public(),
		"success": true,
	})
}
