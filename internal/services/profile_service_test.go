package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfileLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	insertTestAccount(t, db, "a1", "alice")

	created, err := svc.CreateProfile(ctx, "a1", "http://x/avatar.png", map[string]string{"twitter": "@alice"})
	require.NoError(t, err)
	require.Equal(t, "a1", created.AccountID)

	updated, err := svc.UpdateProfile(ctx, "a1", "http://x/new.png", map[string]string{"github": "alice"})
	require.NoError(t, err)
	require.Equal(t, "http://x/new.png", updated.Avatar)
	require.Equal(t, "alice", updated.Social["github"])

	profile, account, err := svc.GetProfileByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, profile.ID)
	require.Equal(t, "alice", account.Username)

	_, _, err = svc.GetProfileByUsername(ctx, "nobody")
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpdateMissingProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)
	insertTestAccount(t, db, "a1", "alice")

	_, err := svc.UpdateProfile(context.Background(), "a1", "", nil)
	require.ErrorIs(t, err, ErrProfileNotFound)
}
