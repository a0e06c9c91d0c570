package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/companyhq/company-api/internal/core/domain"
)

func testService() *Service {
	return New(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
}

func testUser() *domain.User {
	return &domain.User{
		ID:    "user_1",
		Email: "alice@co.com",
		Role:  domain.RoleAdmin,
	}
}

func TestIssueVerify_AccessRoundtrip(t *testing.T) {
	svc := testService()

	signed, err := svc.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := svc.VerifyAccess(signed)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.Subject != "user_1" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Email != "alice@co.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestIssueVerify_RefreshRoundtrip(t *testing.T) {
	svc := testService()

	signed, err := svc.IssueRefresh(testUser())
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	claims, err := svc.VerifyRefresh(signed)
	if err != nil {
		t.Fatalf("VerifyRefresh: %v", err)
	}
	if claims.Subject != "user_1" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := testService()

	signed, err := svc.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	// Move the verifier's clock past the access TTL.
	svc.WithClock(func() time.Time { return time.Now().Add(16 * time.Minute) })

	if _, err := svc.VerifyAccess(signed); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	svc := testService()

	signed, err := svc.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("expected JWS compact form, got %d parts", len(parts))
	}

	// Rewrite the payload claiming a different role without re-signing.
	payload := strings.ReplaceAll(
		decodeSegment(t, parts[1]), string(domain.RoleAdmin), string(domain.RoleClient))
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(payload))
	tampered := strings.Join(parts, ".")

	if _, err := svc.VerifyAccess(tampered); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	svc := testService()
	if _, err := svc.VerifyAccess("not-a-token"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestVerify_KindsNotInterchangeable(t *testing.T) {
	svc := testService()

	access, err := svc.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	refresh, err := svc.IssueRefresh(testUser())
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	if _, err := svc.VerifyRefresh(access); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
	if _, err := svc.VerifyAccess(refresh); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
}

func TestVerify_KindCheckSurvivesSharedSecret(t *testing.T) {
	// Even with both secrets misconfigured to the same value, the embedded
	// kind claim keeps the two token types apart.
	svc := New(Config{AccessSecret: "same", RefreshSecret: "same"})

	access, err := svc.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	if _, err := svc.VerifyRefresh(access); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func decodeSegment(t *testing.T, seg string) string {
	t.Helper()
	b, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		t.Fatalf("decode segment: %v", err)
	}
	return string(b)
}
