package auth

import (
	"testing"
	"time"

	"github.com/csemotors/inventory/internal/model"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateToken(secret, 1, model.TypeAdmin, "Alice")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.AccountID != 1 {
		t.Errorf("expected account_id 1, got %d", claims.AccountID)
	}
	if claims.AccountType != model.TypeAdmin {
		t.Errorf("expected account_type 'Admin', got %q", claims.AccountType)
	}
	if claims.Firstname != "Alice" {
		t.Errorf("expected firstname 'Alice', got %q", claims.Firstname)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret1", 1, model.TypeAdmin, "Alice")

	_, err := ValidateToken("secret2", token)
	if err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("secret", "not-a-token")
	if err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestTokenExpiry(t *testing.T) {
	// Just verify the expiry is set correctly.
	secret := "test"
	token, _ := GenerateToken(secret, 1, model.TypeClient, "Bob")
	claims, _ := ValidateToken(secret, token)

	expiresAt := claims.ExpiresAt.Time
	expectedExpiry := time.Now().Add(TokenExpiry)

	// Should be within a few seconds.
	diff := expectedExpiry.Sub(expiresAt)
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from expected: diff=%v", diff)
	}
}
