package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/velann/socialize-be/internal/models"
)

func testAccount(id, username, email string) models.Account {
	return models.Account{
		ID:                id,
		Username:          username,
		Email:             email,
		PasswordHash:      "hash",
		VerificationToken: "verify-" + id,
		CreatedAt:         time.Now(),
	}
}

func TestMemoryInsertUniqueness(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
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

func TestMemoryConsumeVerificationTokenOnce(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
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

func TestMemoryConsumeVerificationTokenConcurrent(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Insert(ctx, testAccount("1", "alice", "alice@x.com")); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	const racers = 16
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ConsumeVerificationToken(ctx, "verify-1")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes int
	for err := range errs {
		if err == nil {
			successes++
		} else if err != ErrNoSuchToken {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one winner, got %d", successes)
	}
}

func TestMemoryResetTokenLifecycle(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	if err := s.Insert(ctx, testAccount("1", "alice", "alice@x.com")); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := s.SetResetToken(ctx, "1", "reset-1", now.Add(time.Hour)); err != nil {
		t.Fatalf("SetResetToken error: %v", err)
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

func TestMemoryResetTokenExpiry(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	if err := s.Insert(ctx, testAccount("1", "alice", "alice@x.com")); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := s.SetResetToken(ctx, "1", "reset-1", now.Add(-time.Minute)); err != nil {
		t.Fatalf("SetResetToken error: %v", err)
	}

	// An expired token behaves exactly like an unknown one.
	if _, err := s.ConsumeResetToken(ctx, "reset-1", "newhash", now); err != ErrNoSuchToken {
		t.Fatalf("expected ErrNoSuchToken for expired token, got %v", err)
	}

	account, err := s.FindByID(ctx, "1")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if account.PasswordHash != "hash" {
		t.Fatalf("password hash changed on expired reset")
	}
	// The failed attempt itself clears the stale pair.
	if account.ResetToken != "" || account.ResetTokenExpiresAt != nil {
		t.Fatalf("reset fields not cleared after expired attempt: %+v", account)
	}
}

func TestMemoryClearExpiredResetTokens(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("%d", i)
		if err := s.Insert(ctx, testAccount(id, "user"+id, "user"+id+"@x.com")); err != nil {
			t.Fatalf("Insert error: %v", err)
		}
	}
	// Two expired windows, one still open.
	if err := s.SetResetToken(ctx, "0", "reset-0", now.Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := s.SetResetToken(ctx, "1", "reset-1", now.Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := s.SetResetToken(ctx, "2", "reset-2", now.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	cleared, err := s.ClearExpiredResetTokens(ctx, now)
	if err != nil {
		t.Fatalf("ClearExpiredResetTokens error: %v", err)
	}
	if cleared != 2 {
		t.Fatalf("expected 2 cleared, got %d", cleared)
	}

	account, err := s.FindByID(ctx, "2")
	if err != nil {
		t.Fatal(err)
	}
	if account.ResetToken != "reset-2" {
		t.Fatalf("open reset window was swept")
	}
}
