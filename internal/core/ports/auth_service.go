package ports

import (
	"context"

	"github.com/companyhq/company-api/internal/core/domain"
)

// TokenPair is the credential pair returned by a successful login: a
// short-lived access token plus the long-lived refresh token used to mint
// replacements for it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements the registration, login, and refresh flows.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName, role string) (*domain.User, error)
	// Login checks existence, then the active flag, then the password, in
	// that order. Unknown email and wrong password are indistinguishable to
	// the caller (both ErrInvalidCredentials); an inactive account is not
	// (ErrInactiveAccount). remoteIP is recorded in the audit trail only.
	Login(ctx context.Context, email, password, remoteIP string) (*TokenPair, *domain.User, error)
	// Refresh mints a new access token from a valid refresh token. The
	// refresh token itself is not rotated. Every failure is
	// ErrInvalidRefreshToken.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
