package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/companyhq/company-api/internal/core/domain"
	"github.com/companyhq/company-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password, firstName, lastName, role string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password, remoteIP string) (*ports.TokenPair, *domain.User, error)
	refreshFn  func(ctx context.Context, refreshToken string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, firstName, lastName, role string) (*domain.User, error) {
	return s.registerFn(ctx, email, password, firstName, lastName, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password, remoteIP string) (*ports.TokenPair, *domain.User, error) {
	return s.loginFn(ctx, email, password, remoteIP)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.refreshFn(ctx, refreshToken)
}

func jsonRequest(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, firstName, lastName, role string) (*domain.User, error) {
			if email != "alice@co.com" || firstName != "Alice" || role != "ADMIN" {
				t.Fatalf("unexpected args: %s %s %s", email, firstName, role)
			}
			return &domain.User{ID: "user_1", Email: email, FirstName: firstName, LastName: lastName, Role: domain.RoleAdmin, IsActive: true}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := jsonRequest(t, http.MethodPost, "/api/auth/register",
		`{"email":"alice@co.com","password":"secret12","firstName":"Alice","lastName":"Doe","role":"ADMIN"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "alice@co.com" || user["role"] != "ADMIN" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must never be serialized")
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, firstName, lastName, role string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	c, _ := jsonRequest(t, http.MethodPost, "/api/auth/register",
		`{"email":"alice@co.com","password":"secret12","firstName":"Alice","lastName":"Doe"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_RejectsShortPassword(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, firstName, lastName, role string) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := jsonRequest(t, http.MethodPost, "/api/auth/register",
		`{"email":"alice@co.com","password":"short","firstName":"Alice","lastName":"Doe"}`)

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password, remoteIP string) (*ports.TokenPair, *domain.User, error) {
			if email != "alice@co.com" || password != "secret12" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.TokenPair{AccessToken: "access123", RefreshToken: "refresh123"},
				&domain.User{ID: "user_1", Email: email, Role: domain.RoleMember, IsActive: true}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := jsonRequest(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@co.com","password":"secret12"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "access123" || resp["refreshToken"] != "refresh123" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password, remoteIP string) (*ports.TokenPair, *domain.User, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := jsonRequest(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@co.com","password":"wrong-pass"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InactiveAccount(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password, remoteIP string) (*ports.TokenPair, *domain.User, error) {
			return nil, nil, domain.ErrInactiveAccount
		},
	}
	h := NewAuthHandler(stub)

	c, _ := jsonRequest(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@co.com","password":"secret12"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInactiveAccount) {
		t.Fatalf("expected ErrInactiveAccount, got %v", err)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
			if refreshToken != "refresh123" {
				t.Fatalf("unexpected token: %s", refreshToken)
			}
			return "access456", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := jsonRequest(t, http.MethodPost, "/api/auth/refresh", `{"refreshToken":"refresh123"}`)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "access456" {
		t.Fatalf("unexpected token: %+v", resp)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
			t.Fatalf("service must not be called")
			return "", nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := jsonRequest(t, http.MethodPost, "/api/auth/refresh", `{}`)

	if err := h.Refresh(c); !errors.Is(err, domain.ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}
