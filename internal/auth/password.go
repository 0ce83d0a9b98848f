package auth

import "golang.org/x/crypto/bcrypt"

// burnHash is a real bcrypt digest compared against when a login names an
// unknown username, so the request costs the same as a password mismatch.
const burnHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword derives a one-way, salted hash of the plaintext. The
// plaintext is never persisted.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. The
// comparison does not leak the mismatch position.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BurnPassword runs a throwaway comparison for requests that have no stored
// hash to check against.
func BurnPassword(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(burnHash), []byte(password))
}
