package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/companyhq/company-api/internal/core/domain"
)

func rbacRequest(t *testing.T, identity *domain.Identity, allowed ...domain.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(IdentityKey, *identity)
	}

	called := false
	mw := RBAC(allowed...)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRBAC_AllowsRoleInSet(t *testing.T) {
	identity := &domain.Identity{ID: "u1", Role: domain.RoleAdmin}
	rec, called := rbacRequest(t, identity, domain.RoleAdmin)
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_ForbidsRoleOutsideSet(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleMember, domain.RoleClient} {
		identity := &domain.Identity{ID: "u1", Role: role}
		rec, called := rbacRequest(t, identity, domain.RoleAdmin)
		if called {
			t.Fatalf("%s: next handler must not be called", role)
		}
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", role, rec.Code)
		}
	}
}

func TestRBAC_MissingIdentity(t *testing.T) {
	rec, called := rbacRequest(t, nil, domain.RoleAdmin)
	if called {
		t.Fatalf("next handler must not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
