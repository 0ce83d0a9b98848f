package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/velann/socialize-be/internal/models"
)

// ProfileServiceProvider defines the interface for profile services.
type ProfileServiceProvider interface {
	CreateProfile(ctx context.Context, accountID, avatar string, social map[string]string) (models.Profile, error)
	UpdateProfile(ctx context.Context, accountID, avatar string, social map[string]string) (models.Profile, error)
	GetProfileByAccountID(ctx context.Context, accountID string) (models.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (models.Profile, models.PublicAccount, error)
}

// ProfileService provides business logic for profile management.
type ProfileService struct {
	db *sql.DB
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *sql.DB) *ProfileService {
	return &ProfileService{db: db}
}

// CreateProfile creates the profile for an account. Each account has at
// most one profile.
func (s *ProfileService) CreateProfile(ctx context.Context, accountID, avatar string, social map[string]string) (models.Profile, error) {
	socialJSON, err := json.Marshal(social)
	if err != nil {
		return models.Profile{}, err
	}

	now := time.Now()
	profile := models.Profile{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Avatar:    avatar,
		Social:    social,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO profiles (id, account_id, avatar, social_json, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		profile.ID, profile.AccountID, profile.Avatar, string(socialJSON), profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// UpdateProfile replaces the avatar and social links of an existing profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, accountID, avatar string, social map[string]string) (models.Profile, error) {
	socialJSON, err := json.Marshal(social)
	if err != nil {
		return models.Profile{}, err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE profiles SET avatar = ?, social_json = ?, updated_at = ? WHERE account_id = ?",
		avatar, string(socialJSON), time.Now(), accountID)
	if err != nil {
		return models.Profile{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Profile{}, err
	}
	if n == 0 {
		return models.Profile{}, ErrProfileNotFound
	}
	return s.GetProfileByAccountID(ctx, accountID)
}

// GetProfileByAccountID retrieves the profile belonging to an account.
func (s *ProfileService) GetProfileByAccountID(ctx context.Context, accountID string) (models.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, account_id, avatar, social_json, created_at, updated_at FROM profiles WHERE account_id = ?",
		accountID)
	return scanProfile(row)
}

// GetProfileByUsername retrieves a profile, and the public projection of
// its account, by the account's username.
func (s *ProfileService) GetProfileByUsername(ctx context.Context, username string) (models.Profile, models.PublicAccount, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT p.id, p.account_id, p.avatar, p.social_json, p.created_at, p.updated_at,
		        a.id, a.username, a.email, a.verified, a.created_at
		 FROM profiles p JOIN accounts a ON a.id = p.account_id
		 WHERE a.username = ?`, username)

	var profile models.Profile
	var account models.PublicAccount
	var socialJSON string
	err := row.Scan(&profile.ID, &profile.AccountID, &profile.Avatar, &socialJSON,
		&profile.CreatedAt, &profile.UpdatedAt,
		&account.ID, &account.Username, &account.Email, &account.Verified, &account.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Profile{}, models.PublicAccount{}, ErrProfileNotFound
		}
		return models.Profile{}, models.PublicAccount{}, err
	}
	if err := json.Unmarshal([]byte(socialJSON), &profile.Social); err != nil {
		return models.Profile{}, models.PublicAccount{}, err
	}
	return profile, account, nil
}

func scanProfile(row *sql.Row) (models.Profile, error) {
	var profile models.Profile
	var socialJSON string
	err := row.Scan(&profile.ID, &profile.AccountID, &profile.Avatar, &socialJSON,
		&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Profile{}, ErrProfileNotFound
		}
		return models.Profile{}, err
	}
	if err := json.Unmarshal([]byte(socialJSON), &profile.Social); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}
