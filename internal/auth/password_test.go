package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "Secret123" {
		t.Fatal("hash equals plaintext")
	}

	if !CheckPassword(hash, "Secret123") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password are identical")
	}
}
