package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/velann/socialize-be/internal/auth"
	"github.com/velann/socialize-be/internal/mailer"
	"github.com/velann/socialize-be/internal/models"
	"github.com/velann/socialize-be/internal/store"
)

// AccountServiceProvider defines the interface for account lifecycle
// services.
type AccountServiceProvider interface {
	Register(ctx context.Context, username, email, password string) (models.Account, error)
	VerifyByToken(ctx context.Context, token string) (models.Account, error)
	Authenticate(ctx context.Context, username, password string) (string, models.Account, error)
	RequestPasswordReset(ctx context.Context, email string) error
	CompleteReset(ctx context.Context, token, newPassword string) (models.Account, error)
	GetAccountByID(ctx context.Context, id string) (models.Account, error)
}

// AccountService orchestrates the account credential lifecycle:
// registration, email verification, login and password reset.
type AccountService struct {
	store       store.AccountStore
	signer      *auth.TokenSigner
	mailer      mailer.Mailer
	appURL      string
	resetWindow time.Duration
}

// NewAccountService creates a new AccountService. appURL is the frontend's
// base URL, embedded in the verification and reset links sent by email;
// resetWindow bounds how long a reset token stays valid.
func NewAccountService(st store.AccountStore, signer *auth.TokenSigner, m mailer.Mailer, appURL string, resetWindow time.Duration) *AccountService {
	return &AccountService{
		store:       st,
		signer:      signer,
		mailer:      m,
		appURL:      appURL,
		resetWindow: resetWindow,
	}
}

// Register creates a new unverified account and queues a verification
// email. The caller's response does not wait for, or depend on, delivery:
// the account record is already durable and the mail is best-effort.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (models.Account, error) {
	if _, err := s.store.FindByUsername(ctx, username); err == nil {
		return models.Account{}, ErrDuplicateUsername
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.Account{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return models.Account{}, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.Account{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := auth.NewToken()
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to generate verification token: %w", err)
	}

	account := models.Account{
		ID:                uuid.New().String(),
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		VerificationToken: token,
		CreatedAt:         time.Now(),
	}

	// The store's uniqueness constraints are the authoritative check; the
	// lookups above only produce the friendlier error for the common case.
	if err := s.store.Insert(ctx, account); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			return models.Account{}, ErrDuplicateUsername
		case errors.Is(err, store.ErrDuplicateEmail):
			return models.Account{}, ErrDuplicateEmail
		}
		return models.Account{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	link := s.appURL + "/users/verify-now/" + token
	s.sendAsync(account.Email, "Verify your email address",
		"Please verify your account: "+link,
		fmt.Sprintf(`<p>Hello %s, please click the link below to verify your account.</p><p><a href=%q>Verify Now</a></p>`, account.Username, link))

	return account, nil
}

// VerifyByToken consumes a verification token, marking its holder verified.
// A consumed, expired or never-issued token all fail the same way.
func (s *AccountService) VerifyByToken(ctx context.Context, token string) (models.Account, error) {
	account, err := s.store.ConsumeVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNoSuchToken) {
			return models.Account{}, ErrInvalidOrExpiredToken
		}
		return models.Account{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return account, nil
}

// Authenticate checks the credentials and, on success, issues a signed
// session token. Unverified accounts may log in; see DESIGN.md.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (string, models.Account, error) {
	account, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Keep the request cost flat so timing does not reveal whether
			// the username exists.
			auth.BurnPassword(password)
			return "", models.Account{}, ErrAccountNotFound
		}
		return "", models.Account{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return "", models.Account{}, ErrInvalidCredentials
	}

	token, err := s.signer.Issue(account)
	if err != nil {
		return "", models.Account{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, account, nil
}

// RequestPasswordReset opens a time-bounded reset window for the account
// with this email and queues a reset email.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	token, err := auth.NewToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(s.resetWindow)
	if err := s.store.SetResetToken(ctx, account.ID, token, expiresAt); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	link := s.appURL + "/users/reset-password-now/" + token
	s.sendAsync(account.Email, "Reset your password",
		"Please use the link below to reset your password: "+link,
		fmt.Sprintf(`<p>Hello %s, please click the link below to reset your password.</p><p><a href=%q>Reset Password</a></p>`, account.Username, link))

	return nil
}

// CompleteReset consumes a reset token before its expiry, replacing the
// account's password. Expired and unknown tokens are indistinguishable.
func (s *AccountService) CompleteReset(ctx context.Context, token, newPassword string) (models.Account, error) {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.store.ConsumeResetToken(ctx, token, hash, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNoSuchToken) {
			return models.Account{}, ErrInvalidOrExpiredToken
		}
		return models.Account{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.sendAsync(account.Email, "Your password was changed",
		"Your password was just reset. If this wasn't you, contact support immediately.",
		fmt.Sprintf(`<p>Hello %s, your password was just reset successfully.</p>`, account.Username))

	return account, nil
}

// GetAccountByID retrieves a single account by its ID.
func (s *AccountService) GetAccountByID(ctx context.Context, id string) (models.Account, error) {
	account, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return account, nil
}

// sendAsync dispatches mail after the state transition has committed. It
// runs on a background context so a caller disconnect cannot abort the
// delivery, and failures are only logged.
func (s *AccountService) sendAsync(to, subject, textBody, htmlBody string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.Send(ctx, to, subject, textBody, htmlBody); err != nil {
			log.Warn().Err(err).Str("email", to).Str("subject", subject).Msg("Failed to deliver notification mail")
		}
	}()
}
