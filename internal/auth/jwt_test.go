package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	claims := Claims{
		UserID:       "22222222-2222-2222-2222-222222222221",
		Role:         "manager",
		DepartmentID: "33333333-3333-3333-3333-333333333331",
	}
	token, err := NewAccessToken("secret", "vigil-identity", time.Minute, claims)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	parsed, err := ParseToken("secret", "vigil-identity", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.UserID != claims.UserID {
		t.Fatalf("expected user %s, got %s", claims.UserID, parsed.UserID)
	}
	if parsed.Role != "manager" {
		t.Fatalf("expected role manager, got %s", parsed.Role)
	}
	if parsed.DepartmentID != claims.DepartmentID {
		t.Fatalf("expected department %s, got %s", claims.DepartmentID, parsed.DepartmentID)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewAccessToken("secret", "vigil-identity", time.Minute, Claims{UserID: "u"})
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := ParseToken("other", "vigil-identity", token); err == nil {
		t.Fatalf("expected parse to fail with wrong secret")
	}
}

func TestTokenRejectsWrongIssuer(t *testing.T) {
	token, err := NewAccessToken("secret", "someone-else", time.Minute, Claims{UserID: "u"})
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := ParseToken("secret", "vigil-identity", token); err == nil {
		t.Fatalf("expected parse to fail with wrong issuer")
	}
}
