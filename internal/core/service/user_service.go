package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/companyhq/company-api/internal/core/domain"
	"github.com/companyhq/company-api/internal/core/ports"
)

const maxPageSize = 100

// UserService serves the user resource behind the auth gates.
type UserService struct {
	repo   ports.UserRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditRecorder, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, logger: logger}
}

// List returns a page of users and the total match count. Page defaults to
// 1 and the page size is clamped to maxPageSize.
func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	return s.repo.List(ctx, filter)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// SetActive flips an account's active flag. Deactivation revokes access on
// the subject's next gated request: the authentication middleware re-reads
// the live record, so no outstanding token needs to expire first.
func (s *UserService) SetActive(ctx context.Context, actor domain.Identity, id string, active bool) (*domain.User, error) {
	user, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Bool("active", active).
		Str("actor_id", actor.ID).
		Msg("user active flag changed")

	if s.audit != nil {
		s.audit.Record(domain.AuthEvent{
			Type:      domain.AuthEventStatusChanged,
			Subject:   user.Email,
			UserID:    user.ID,
			Timestamp: time.Now().UTC(),
		})
	}
	return user, nil
}
