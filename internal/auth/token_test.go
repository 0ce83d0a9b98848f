package auth

import (
	"encoding/hex"
	"testing"
)

func TestNewToken(t *testing.T) {
	t.Parallel()

	token, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	raw, err := hex.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not hex: %v", err)
	}
	if len(raw) != tokenBytes {
		t.Fatalf("token has %d bytes, want %d", len(raw), tokenBytes)
	}
}

func TestNewTokenUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 256; i++ {
		token, err := NewToken()
		if err != nil {
			t.Fatalf("NewToken error: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}
