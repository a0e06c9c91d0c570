package domain

import "errors"

// Sentinel errors for the authentication and authorization contract. The
// HTTP error handler is the single place that maps these to status codes;
// services and repositories return them unwrapped or wrapped with %w.
var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password"
	// so that login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInactiveAccount is distinct from ErrInvalidCredentials: a disabled
	// user who presents the right password gets an actionable 403.
	ErrInactiveAccount = errors.New("user account is inactive")

	// ErrInvalidRefreshToken collapses every refresh failure (bad signature,
	// expiry, unknown or inactive subject) into one response.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
	ErrForbidden    = errors.New("access forbidden")
	ErrRateLimited  = errors.New("too many requests")
)
