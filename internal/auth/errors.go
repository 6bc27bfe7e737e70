package auth

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidToken = errors.New("invalid session token")
)
