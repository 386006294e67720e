package store

import (
	"context"
	"testing"
	"time"

	"github.com/csemotors/inventory/internal/db"
)

func TestGetJWTSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// First call should generate a secret.
	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 == "" {
		t.Fatal("expected non-empty secret")
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	// Second call should return the same secret.
	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestTokenRevocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "some-jti")
	if err != nil {
		t.Fatal(err)
	}
	if revoked {
		t.Error("expected unknown jti to not be revoked")
	}

	if err := RevokeToken(ctx, database, "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	revoked, err = IsTokenRevoked(ctx, database, "some-jti")
	if err != nil {
		t.Fatal(err)
	}
	if !revoked {
		t.Error("expected jti to be revoked")
	}

	// Revoking again is a no-op.
	if err := RevokeToken(ctx, database, "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
}
