// Package token issues and verifies the signed credentials that carry an
// authenticated identity between requests.
//
// Two token kinds exist: a short-lived access token embedding the subject's
// id, email, and role snapshot, and a long-lived refresh token embedding the
// subject id only. Each kind is signed with its own secret, so leaking one
// secret never allows minting the other kind. Issuance and verification are
// pure functions of (claims, secret, TTL, clock), with no I/O.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/companyhq/company-api/internal/core/domain"
)

// Typed verification failures. Callers that surface these over HTTP must
// collapse them into one generic response; the distinction exists for
// logging and metrics only.
var (
	ErrTokenMalformed = errors.New("token malformed or signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// Token kinds embedded as a claim so that an access token presented to
// VerifyRefresh fails even if the two secrets were misconfigured to match.
const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// AccessClaims is the payload of an access token. Role is a snapshot taken
// at issuance; the authentication middleware re-reads the live role.
type AccessClaims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Kind  string      `json:"tkn"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token: subject id only.
type RefreshClaims struct {
	Kind string `json:"tkn"`
	jwt.RegisteredClaims
}

// Config carries the two signing secrets and TTLs.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Service signs and verifies both token kinds. The clock is injectable so
// expiry behaviour is testable without sleeping.
type Service struct {
	cfg Config
	now func() time.Time
}

// New returns a Service with sane TTL defaults (15m access, 7d refresh).
func New(cfg Config) *Service {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &Service{cfg: cfg, now: time.Now}
}

// WithClock overrides the time source. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// IssueAccess mints an access token for user.
func (s *Service) IssueAccess(user *domain.User) (string, error) {
	now := s.now().UTC()
	claims := AccessClaims{
		Email: user.Email,
		Role:  user.Role,
		Kind:  kindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.cfg.AccessSecret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefresh mints a refresh token for user. Only the subject id is
// embedded: a refresh token grants nothing but the right to ask for a new
// access token, and the live lookup at refresh time supplies the rest.
func (s *Service) IssueRefresh(user *domain.User) (string, error) {
	now := s.now().UTC()
	claims := RefreshClaims{
		Kind: kindRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, nil
}

// VerifyAccess validates signature and expiry of an access token and returns
// its claims. Nothing from the payload is trusted before the signature check.
func (s *Service) VerifyAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(tokenString, claims, s.cfg.AccessSecret); err != nil {
		return nil, err
	}
	if claims.Kind != kindAccess || claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token against the refresh secret.
func (s *Service) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.parse(tokenString, claims, s.cfg.RefreshSecret); err != nil {
		return nil, err
	}
	if claims.Kind != kindRefresh || claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

func (s *Service) parse(tokenString string, claims jwt.Claims, secret string) error {
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenMalformed
	}
	if !tkn.Valid {
		return ErrTokenMalformed
	}
	return nil
}
