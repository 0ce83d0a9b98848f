package services

import "errors"

// Error kinds returned by the services. The HTTP layer translates these to
// status codes; the messages are deliberately generic, so a caller probing
// the system cannot tell an invalid token from an expired or already-used
// one.
var (
	ErrDuplicateUsername     = errors.New("username is already taken")
	ErrDuplicateEmail        = errors.New("email is already registered")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrStoreUnavailable      = errors.New("account store unavailable")

	ErrProfileNotFound = errors.New("profile not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostAuthor   = errors.New("post does not belong to you")
	ErrAlreadyLiked    = errors.New("post already liked")
)
