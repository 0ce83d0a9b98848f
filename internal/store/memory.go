package store

import (
	"context"
	"sync"
	"time"

	"github.com/velann/socialize-be/internal/models"
)

// MemoryStore is a mutex-guarded in-memory AccountStore. It backs the test
// suite and ad-hoc runs that don't want a database file. Every operation
// holds the lock for its full duration, which gives the same
// at-most-one-winner semantics as the SQL implementation's conditional
// updates.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]models.Account
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]models.Account)}
}

// Insert persists a new account, rejecting duplicate usernames and emails.
func (s *MemoryStore) Insert(ctx context.Context, account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Username == account.Username {
			return ErrDuplicateUsername
		}
		if existing.Email == account.Email {
			return ErrDuplicateEmail
		}
	}
	s.accounts[account.ID] = account
	return nil
}

// FindByID retrieves a single account by its ID.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return models.Account{}, ErrNotFound
	}
	return account, nil
}

// FindByUsername retrieves a single account by its username.
func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return models.Account{}, ErrNotFound
}

// FindByEmail retrieves a single account by its email address.
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return models.Account{}, ErrNotFound
}

// ConsumeVerificationToken marks the holder verified and clears the token.
func (s *MemoryStore) ConsumeVerificationToken(ctx context.Context, token string) (models.Account, error) {
	if token == "" {
		return models.Account{}, ErrNoSuchToken
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, account := range s.accounts {
		if account.VerificationToken == token {
			account.Verified = true
			account.VerificationToken = ""
			s.accounts[id] = account
			return account, nil
		}
	}
	return models.Account{}, ErrNoSuchToken
}

// SetResetToken installs a reset token and its expiry on the account.
func (s *MemoryStore) SetResetToken(ctx context.Context, accountID, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return ErrNotFound
	}
	account.ResetToken = token
	account.ResetTokenExpiresAt = &expiresAt
	s.accounts[accountID] = account
	return nil
}

// ConsumeResetToken replaces the password hash and clears both reset fields.
func (s *MemoryStore) ConsumeResetToken(ctx context.Context, token, newPasswordHash string, now time.Time) (models.Account, error) {
	if token == "" {
		return models.Account{}, ErrNoSuchToken
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, account := range s.accounts {
		if account.ResetToken != token {
			continue
		}
		if account.ResetTokenExpiresAt == nil || !now.Before(*account.ResetTokenExpiresAt) {
			// Expired tokens are indistinguishable from unknown ones, but a
			// detected reuse attempt clears the stale pair right away.
			account.ResetToken = ""
			account.ResetTokenExpiresAt = nil
			s.accounts[id] = account
			return models.Account{}, ErrNoSuchToken
		}
		account.PasswordHash = newPasswordHash
		account.ResetToken = ""
		account.ResetTokenExpiresAt = nil
		s.accounts[id] = account
		return account, nil
	}
	return models.Account{}, ErrNoSuchToken
}

// ClearExpiredResetTokens drops reset fields whose window has elapsed.
func (s *MemoryStore) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cleared int64
	for id, account := range s.accounts {
		if account.ResetToken != "" && account.ResetTokenExpiresAt != nil && !now.Before(*account.ResetTokenExpiresAt) {
			account.ResetToken = ""
			account.ResetTokenExpiresAt = nil
			s.accounts[id] = account
			cleared++
		}
	}
	return cleared, nil
}
