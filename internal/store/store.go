package store

import (
	"context"
	"errors"
	"time"

	"github.com/velann/socialize-be/internal/models"
)

var (
	// ErrNotFound is returned by lookups when no account matches.
	ErrNotFound = errors.New("store: account not found")
	// ErrDuplicateUsername is returned by Insert when the username is taken.
	ErrDuplicateUsername = errors.New("store: username already exists")
	// ErrDuplicateEmail is returned by Insert when the email is taken.
	ErrDuplicateEmail = errors.New("store: email already exists")
	// ErrNoSuchToken is returned by token consumption when no account
	// currently holds the token. A consumed, expired or never-issued token
	// all produce this error.
	ErrNoSuchToken = errors.New("store: no account holds this token")
)

// AccountStore persists credential records. Implementations must enforce
// username/email uniqueness on Insert and perform the token-consuming
// operations as single conditional writes, so that at most one of any
// number of racing callers succeeds per token.
type AccountStore interface {
	Insert(ctx context.Context, account models.Account) error
	FindByID(ctx context.Context, id string) (models.Account, error)
	FindByUsername(ctx context.Context, username string) (models.Account, error)
	FindByEmail(ctx context.Context, email string) (models.Account, error)

	// ConsumeVerificationToken marks the holder verified and clears the
	// token in the same write.
	ConsumeVerificationToken(ctx context.Context, token string) (models.Account, error)

	// SetResetToken installs a reset token and its expiry together. Any
	// previous reset token on the account is replaced.
	SetResetToken(ctx context.Context, accountID, token string, expiresAt time.Time) error

	// ConsumeResetToken replaces the password hash and clears both reset
	// fields in the same write. A token at or past its expiry does not
	// match; a detected expired match has both reset fields cleared before
	// the error is returned.
	ConsumeResetToken(ctx context.Context, token, newPasswordHash string, now time.Time) (models.Account, error)

	// ClearExpiredResetTokens removes reset token/expiry pairs whose window
	// has elapsed and reports how many accounts were touched.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
