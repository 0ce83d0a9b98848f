package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/velann/socialize-be/internal/models"
)

const accountColumns = "id, username, email, password_hash, verified, verification_token, reset_token, reset_token_expires_at, created_at"

// SQLiteStore is the production AccountStore backed by database/sql.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore on an open connection pool.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Insert persists a new account. Uniqueness is enforced by the UNIQUE
// constraints on username and email, so two racing registrations can never
// both succeed.
func (s *SQLiteStore) Insert(ctx context.Context, account models.Account) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (id, username, email, password_hash, verified, verification_token, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		account.ID, account.Username, account.Email, account.PasswordHash,
		account.Verified, nullString(account.VerificationToken), account.CreatedAt)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "accounts.username"):
			return ErrDuplicateUsername
		case strings.Contains(err.Error(), "accounts.email"):
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// FindByID retrieves a single account by its ID.
func (s *SQLiteStore) FindByID(ctx context.Context, id string) (models.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id = ?", id)
	return scanAccount(row)
}

// FindByUsername retrieves a single account by its username, including the
// password hash.
func (s *SQLiteStore) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM accounts WHERE username = ?", username)
	return scanAccount(row)
}

// FindByEmail retrieves a single account by its email address.
func (s *SQLiteStore) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM accounts WHERE email = ?", email)
	return scanAccount(row)
}

// ConsumeVerificationToken flips the holder to verified and clears the
// token. The update is conditioned on the token still being present, so a
// racing duplicate request loses and gets ErrNoSuchToken.
func (s *SQLiteStore) ConsumeVerificationToken(ctx context.Context, token string) (models.Account, error) {
	var id string
	row := s.db.QueryRowContext(ctx, "SELECT id FROM accounts WHERE verification_token = ?", token)
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return models.Account{}, ErrNoSuchToken
		}
		return models.Account{}, err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET verified = 1, verification_token = NULL WHERE id = ? AND verification_token = ?",
		id, token)
	if err != nil {
		return models.Account{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Account{}, err
	}
	if n == 0 {
		return models.Account{}, ErrNoSuchToken
	}
	return s.FindByID(ctx, id)
}

// SetResetToken installs a reset token and its expiry on the account.
// Expiry is stored as unix seconds so the validity comparison is numeric.
func (s *SQLiteStore) SetResetToken(ctx context.Context, accountID, token string, expiresAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET reset_token = ?, reset_token_expires_at = ? WHERE id = ?",
		token, expiresAt.Unix(), accountID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeResetToken swaps in the new password hash and clears both reset
// fields, conditioned on the token still matching and not being expired.
func (s *SQLiteStore) ConsumeResetToken(ctx context.Context, token, newPasswordHash string, now time.Time) (models.Account, error) {
	var id string
	row := s.db.QueryRowContext(ctx,
		"SELECT id FROM accounts WHERE reset_token = ? AND reset_token_expires_at > ?",
		token, now.Unix())
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			// A reuse attempt on an expired token clears the stale pair,
			// keeping both fields absent together without waiting for the
			// sweeper.
			if _, clearErr := s.db.ExecContext(ctx,
				"UPDATE accounts SET reset_token = NULL, reset_token_expires_at = NULL WHERE reset_token = ? AND reset_token_expires_at <= ?",
				token, now.Unix()); clearErr != nil {
				return models.Account{}, clearErr
			}
			return models.Account{}, ErrNoSuchToken
		}
		return models.Account{}, err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET password_hash = ?, reset_token = NULL, reset_token_expires_at = NULL WHERE id = ? AND reset_token = ? AND reset_token_expires_at > ?",
		newPasswordHash, id, token, now.Unix())
	if err != nil {
		return models.Account{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Account{}, err
	}
	if n == 0 {
		return models.Account{}, ErrNoSuchToken
	}
	return s.FindByID(ctx, id)
}

// ClearExpiredResetTokens drops reset fields whose window has elapsed.
func (s *SQLiteStore) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET reset_token = NULL, reset_token_expires_at = NULL WHERE reset_token IS NOT NULL AND reset_token_expires_at <= ?",
		now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanAccount(row *sql.Row) (models.Account, error) {
	var a models.Account
	var verification, reset sql.NullString
	var resetExpires sql.NullInt64
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Verified,
		&verification, &reset, &resetExpires, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Account{}, ErrNotFound
		}
		return models.Account{}, err
	}
	a.VerificationToken = verification.String
	a.ResetToken = reset.String
	if resetExpires.Valid {
		t := time.Unix(resetExpires.Int64, 0)
		a.ResetTokenExpiresAt = &t
	}
	return a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
