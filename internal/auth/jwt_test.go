package auth

import (
	"testing"
	"time"

	"github.com/velann/socialize-be/internal/models"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	signer := NewTokenSigner("super-secret", time.Hour)
	account := models.Account{ID: "account-123", Username: "alice"}

	token, err := signer.Issue(account)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.AccountID != account.ID {
		t.Fatalf("accountId mismatch: got %q want %q", claims.AccountID, account.ID)
	}
	if claims.Username != account.Username {
		t.Fatalf("username mismatch: got %q want %q", claims.Username, account.Username)
	}
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	signer := NewTokenSigner("super-secret", -time.Minute)
	token, err := signer.Issue(models.Account{ID: "a1", Username: "alice"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := signer.Verify(token); err != ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession for expired token, got %v", err)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	t.Parallel()

	issued := NewTokenSigner("right-secret", time.Hour)
	token, err := issued.Issue(models.Account{ID: "a1", Username: "alice"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	other := NewTokenSigner("wrong-secret", time.Hour)
	if _, err := other.Verify(token); err != ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession for wrong key, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	t.Parallel()

	signer := NewTokenSigner("super-secret", time.Hour)
	if _, err := signer.Verify("not.a.token"); err != ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession for garbage, got %v", err)
	}
}
