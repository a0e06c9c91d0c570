package ports

import (
	"context"

	"github.com/companyhq/company-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users.
type ListUsersFilter struct {
	Role     domain.Role // optional: filter by role
	IsActive *bool       // optional: filter by active flag
	Page     int         // 1-based
	Limit    int         // max rows per page (capped at 100 by service)
}

// UserRepository is the credential store: the single owner of user records.
// FindByID sits on the critical path of every authenticated request (the
// live check in the authentication middleware) and must be a cheap point
// lookup by primary key.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	// SetActive flips the active flag; deactivation takes effect on the
	// subject's next gated request via the live check.
	SetActive(ctx context.Context, id string, active bool) (*domain.User, error)
}
