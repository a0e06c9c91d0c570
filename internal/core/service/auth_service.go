package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/companyhq/company-api/internal/core/domain"
	"github.com/companyhq/company-api/internal/core/password"
	"github.com/companyhq/company-api/internal/core/ports"
	"github.com/companyhq/company-api/internal/core/token"
)

// AuthService implements registration, login, and refresh.
type AuthService struct {
	repo   ports.UserRepository
	tokens *token.Service
	hasher *password.Hasher
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *token.Service, hasher *password.Hasher, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, hasher: hasher, audit: audit, logger: logger}
}

// Register creates an active user with a hashed password. The email is the
// unique key; a duplicate surfaces as domain.ErrUserExists (409).
func (s *AuthService) Register(ctx context.Context, email, pass, firstName, lastName, role string) (*domain.User, error) {
	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        normalizeEmail(email),
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Role:         parsedRole,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuthEvent{
		Type:    domain.AuthEventRegistered,
		Subject: created.Email,
		UserID:  created.ID,
	})
	return created, nil
}

// Login authenticates a credential pair and issues an access/refresh token
// pair. Check order is fixed: existence, active flag, password. Existence
// and password failures both map to ErrInvalidCredentials so the response
// shape cannot be used to probe which emails are registered; the inactive
// case is deliberately distinct so a disabled user gets an actionable 403.
func (s *AuthService) Login(ctx context.Context, email, pass, remoteIP string) (*ports.TokenPair, *domain.User, error) {
	email = normalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(email, "", remoteIP)
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !user.IsActive {
		s.recordFailure(email, user.ID, remoteIP)
		return nil, nil, domain.ErrInactiveAccount
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		s.recordFailure(email, user.ID, remoteIP)
		return nil, nil, domain.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return nil, nil, err
	}

	s.record(domain.AuthEvent{
		Type:     domain.AuthEventLogin,
		Subject:  email,
		UserID:   user.ID,
		RemoteIP: remoteIP,
	})
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// Refresh verifies a refresh token, re-checks the subject against the live
// store, and mints a new access token. The refresh token is not rotated.
// Every failure mode collapses into ErrInvalidRefreshToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", domain.ErrInvalidRefreshToken
	}

	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidRefreshToken
		}
		return "", err
	}
	if !user.IsActive {
		return "", domain.ErrInvalidRefreshToken
	}

	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return "", err
	}

	s.record(domain.AuthEvent{
		Type:    domain.AuthEventRefreshed,
		Subject: user.Email,
		UserID:  user.ID,
	})
	return access, nil
}

func (s *AuthService) record(event domain.AuthEvent) {
	if s.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	s.audit.Record(event)
}

func (s *AuthService) recordFailure(email, userID, remoteIP string) {
	s.logger.Debug().Str("email", email).Str("remote_ip", remoteIP).Msg("login attempt failed")
	s.record(domain.AuthEvent{
		Type:     domain.AuthEventLoginFailed,
		Subject:  email,
		UserID:   userID,
		RemoteIP: remoteIP,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
