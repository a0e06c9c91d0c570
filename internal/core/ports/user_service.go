package ports

import (
	"context"

	"github.com/companyhq/company-api/internal/core/domain"
)

// UserService exposes the user-resource operations sitting behind the
// authentication and authorization gates.
type UserService interface {
	// List returns a page of users plus the total match count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// SetActive activates or deactivates an account. actor is the admin
	// identity performing the change, recorded in the audit trail.
	SetActive(ctx context.Context, actor domain.Identity, id string, active bool) (*domain.User, error)
}
