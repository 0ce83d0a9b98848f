package models

import "time"

// Account is a user's credential record. The password hash and the
// verification/reset tokens are secrets: they are excluded from JSON and
// must never be logged or returned to a client.
type Account struct {
	ID                  string     `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	Verified            bool       `json:"verified"`
	VerificationToken   string     `json:"-"`
	ResetToken          string     `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// PublicAccount is the projection of an account that is safe to embed in
// API responses.
type PublicAccount struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the outward-facing projection of the account.
func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Verified:  a.Verified,
		CreatedAt: a.CreatedAt,
	}
}
