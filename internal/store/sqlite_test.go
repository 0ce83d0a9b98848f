package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/velann/socialize-be/internal/database"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewSQLiteStore(db)
}

func TestSQLiteInsertUniqueness(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	if err := s.Insert(ctx, testAccount("1", "alice", "alice@x.com")); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := s.Insert(ctx, testAccount("2", "alice", "other@x.com")); err != ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if err := s.Insert(ctx, testAccount("3", "bob", "alice@x.com")); err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSQLiteFindRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	want := testAccount("1", "alice", "alice@x.com")
	if err := s.Insert(ctx, want); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	for _, find := range []func() (string, error){
		func() (string, error) { a, err := s.FindByID(ctx, "1"); return a.Username, err },
		func() (string, error) { a, err := s.FindByUsername(ctx, "alice"); return a.Username, err },
		func() (string, error) { a, err := s.FindByEmail(ctx, "alice@x.com"); return a.Username, err },
	} {
		username, err := find()
		if err != nil {
			t.Fatalf("lookup error: %v", err)
		}
		if username != "alice" {
			t.Fatalf("lookup returned wrong account: %q", username)
		}
	}

	if _, err := s.FindByUsername(ctx, "nobody"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteConsumeVerificationTokenOnce(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	if err := s.Insert(ctx, testAccount("1", "alice", "alice@x.com")); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	account, err := s.ConsumeVerificationToken(ctx, "verify-1")
	if err != nil {
		t.Fatalf("ConsumeVerificationToken error: %v", err)
	}
	if !account.Verified || account.VerificationToken != "" {
		t.Fatalf("expected verified account without token, got %+v", account)
	}

	if _, err := s.ConsumeVerificationToken(ctx, "verify-1"); err != ErrNoSuchToken {
		t.Fatalf("expected ErrNoSuchToken on reuse, got %v", err)
	}
}

func TestSQLiteResetTokenLifecycle(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.Insert(ctx, testAccount("1", "alice", "alice@x.com")); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := s.SetResetToken(ctx, "1", "reset-1", now.Add(time.Hour)); err != nil {
		t.Fatalf("SetResetToken error: %v", err)
	}

	stored, err := s.FindByID(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.ResetToken != "reset-1" || stored.ResetTokenExpiresAt == nil {
		t.Fatalf("reset fields not both set: %+v", stored)
	}

	account, err := s.ConsumeResetToken(ctx, "reset-1", "newhash", now)
	if err != nil {
		t.Fatalf("ConsumeResetToken error: %v", err)
	}
	if account.PasswordHash != "newhash" {
		t.Fatalf("password hash not replaced")
	}
	if account.ResetToken != "" || account.ResetTokenExpiresAt != nil {
		t.Fatalf("reset fields not cleared together: %+v", account)
	}

	if _, err := s.ConsumeResetToken(ctx, "reset-1", "other", now); err != ErrNoSuchToken {
		t.Fatalf("expected ErrNoSuchToken on reuse, got %v", err)
	}
}

func TestSQLiteResetTokenExpiry(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.Insert(ctx, testAccount("1", "alice", "alice@x.com")); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := s.SetResetToken(ctx, "1", "reset-1", now.Add(-time.Minute)); err != nil {
		t.Fatalf("SetResetToken error: %v", err)
	}

	if _, err := s.ConsumeResetToken(ctx, "reset-1", "newhash", now); err != ErrNoSuchToken {
		t.Fatalf("expected ErrNoSuchToken for expired token, got %v", err)
	}

	// The failed attempt itself clears the stale pair.
	account, err := s.FindByID(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if account.ResetToken != "" || account.ResetTokenExpiresAt != nil {
		t.Fatalf("reset fields not cleared after expired attempt: %+v", account)
	}

	// Nothing left for the sweeper.
	cleared, err := s.ClearExpiredResetTokens(ctx, now)
	if err != nil {
		t.Fatalf("ClearExpiredResetTokens error: %v", err)
	}
	if cleared != 0 {
		t.Fatalf("expected 0 cleared, got %d", cleared)
	}
}

func TestSQLiteClearExpiredResetTokens(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.Insert(ctx, testAccount("1", "alice", "alice@x.com")); err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(ctx, testAccount("2", "bob", "bob@x.com")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetResetToken(ctx, "1", "reset-1", now.Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := s.SetResetToken(ctx, "2", "reset-2", now.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	cleared, err := s.ClearExpiredResetTokens(ctx, now)
	if err != nil {
		t.Fatalf("ClearExpiredResetTokens error: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected 1 cleared, got %d", cleared)
	}

	account, err := s.FindByID(ctx, "2")
	if err != nil {
		t.Fatal(err)
	}
	if account.ResetToken != "reset-2" {
		t.Fatalf("open reset window was swept")
	}
}
