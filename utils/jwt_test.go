package utils

import (
	"testing"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_AUD", "")
	t.Setenv("JWT_ISS", "")

	token, err := GenerateAdminJWT(7, "reviewer")
	if err != nil {
		t.Fatalf("GenerateAdminJWT: %v", err)
	}

	// nil redis: revocation check is skipped, validation must still work
	claims, err := ValidateAccessToken(token, nil)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if role, _ := claims["role"].(string); role != "admin" {
		t.Fatalf("role = %q, want admin", role)
	}
	if username, _ := claims["username"].(string); username != "reviewer" {
		t.Fatalf("username = %q, want reviewer", username)
	}
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateAdminJWT(7, "reviewer")
	if err != nil {
		t.Fatalf("GenerateAdminJWT: %v", err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	if _, err := ValidateAccessToken(token, nil); err == nil {
		t.Fatal("token signed with a different secret validated")
	}
}
