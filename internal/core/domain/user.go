package domain

import "time"

// Role classifies what an authenticated actor may do. It is a closed
// enumeration: membership checks go through Valid/ParseRole so that a new
// role forces a compile-time-visible update here.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleClient Role = "CLIENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleClient:
		return true
	}
	return false
}

// ParseRole converts a wire string into a Role. The empty string maps to
// RoleMember, the registration default. Unknown values return ErrInvalidRole.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleMember, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// User models an account in the credential store. PasswordHash never leaves
// the process: it is excluded from JSON and compared only inside the hasher.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the per-request view of a user attached by the authentication
// middleware. The role is read from the live user record at verification
// time, not from token claims, so a demotion takes effect on the next request.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
