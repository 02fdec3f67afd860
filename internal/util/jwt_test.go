package util

import (
	"testing"
	"time"

	"notedu_backend/internal/model"
)

func testUser() *model.User {
	u := &model.User{
		Email: "ogretmen@example.com",
		Role:  model.Teacher,
	}
	u.ID = 42
	return u
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(testUser(), "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.Role != model.Teacher {
		t.Errorf("role = %s, want teacher", claims.Role)
	}
	if claims.Email != "ogretmen@example.com" {
		t.Errorf("email = %s", claims.Email)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "secret-b"); err == nil {
		t.Error("expected signature verification to fail")
	}
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testUser(), "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "test-secret"); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("not.a.token", "test-secret"); err == nil {
		t.Error("expected malformed token to be rejected")
	}
}
