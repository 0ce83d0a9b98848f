package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/velann/socialize-be/internal/models"
)

// ErrInvalidSession is returned for any session token that fails
// verification, whether malformed, tampered with or expired.
var ErrInvalidSession = errors.New("invalid or expired session")

// Claims defines the JWT claims structure.
type Claims struct {
	AccountID string `json:"accountId"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// AccountClaimsKey is the context key for the authenticated account's claims.
type contextKey string

const AccountClaimsKey = contextKey("accountClaims")

// TokenSigner issues and verifies signed session tokens. The signing key
// is loaded once at startup and never rotates within a process lifetime.
type TokenSigner struct {
	key []byte
	ttl time.Duration
}

// NewTokenSigner creates a TokenSigner with the given secret and session
// lifetime.
func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{key: []byte(secret), ttl: ttl}
}

// Issue creates a new signed session token for the account.
func (s *TokenSigner) Issue(account models.Account) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: account.ID,
		Username:  account.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Verify parses and validates a session token string.
func (s *TokenSigner) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Middleware protects routes, accepting the session token from the
// Authorization header or the token cookie.
func (s *TokenSigner) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, "Bearer ")
				if len(parts) == 2 {
					tokenStr = parts[1]
				}
			}

			if tokenStr == "" {
				cookie, err := r.Cookie("token")
				if err != nil {
					http.Error(w, "Missing auth token", http.StatusUnauthorized)
					return
				}
				tokenStr = cookie.Value
			}

			claims, err := s.Verify(tokenStr)
			if err != nil {
				http.Error(w, "Invalid auth token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AccountClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retrieves the authenticated claims set by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(AccountClaimsKey).(*Claims)
	return claims, ok
}
