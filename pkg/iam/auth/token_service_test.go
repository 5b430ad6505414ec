package auth

import (
	"testing"
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "vinculo")

	token, err := svc.GenerateAccessToken(kernel.UserID("u1"), RoleCandidate, kernel.Email("ana@example.com"))
	if err != nil {
		t.Fatalf("GenerateAccessToken() returned error: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() returned error: %v", err)
	}
	if claims.UserID != kernel.UserID("u1") {
		t.Errorf("UserID = %s", claims.UserID)
	}
	if claims.Role != RoleCandidate {
		t.Errorf("Role = %s", claims.Role)
	}
	if claims.Email != kernel.Email("ana@example.com") {
		t.Errorf("Email = %s", claims.Email)
	}
	if time.Until(claims.ExpiresAt) <= 0 {
		t.Error("token already expired")
	}
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, "vinculo")
	validator := NewJWTService("secret-b", time.Hour, "vinculo")

	token, err := issuer.GenerateAccessToken(kernel.UserID("u1"), RoleAdmin, kernel.Email("a@b.co"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := validator.ValidateAccessToken(token); err == nil {
		t.Error("token signed with another secret must be rejected")
	}
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, "vinculo")

	token, err := svc.GenerateAccessToken(kernel.UserID("u1"), RoleCompany, kernel.Email("a@b.co"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "vinculo")
	if _, err := svc.ValidateAccessToken("not-a-token"); err == nil {
		t.Error("malformed token must be rejected")
	}
}
