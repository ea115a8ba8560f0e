package utils

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	InitJWT("test-access-secret", "test-refresh-secret", 15*time.Minute, 168*time.Hour)

	token, err := GenerateAccessToken(42, "patient")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.ProfileID != 42 {
		t.Fatalf("expected profile id 42, got %d", claims.ProfileID)
	}
	if claims.Role != "patient" {
		t.Fatalf("expected role patient, got %s", claims.Role)
	}
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	InitJWT("test-access-secret", "test-refresh-secret", -time.Minute, 168*time.Hour)

	token, err := GenerateAccessToken(42, "patient")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ValidateAccessToken(token); err == nil {
		t.Fatal("expected validation error for expired token")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	InitJWT("test-access-secret", "test-refresh-secret", 15*time.Minute, 168*time.Hour)

	token, err := GenerateAccessToken(42, "patient")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateAccessToken(tampered); err == nil {
		t.Fatal("expected validation error for tampered token")
	}
}

func TestHashRefreshTokenIsStable(t *testing.T) {
	refreshToken, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if HashRefreshToken(refreshToken) != HashRefreshToken(refreshToken) {
		t.Fatal("hashing the same token twice must give the same result")
	}
	if HashRefreshToken(refreshToken) == refreshToken {
		t.Fatal("hash must differ from the raw token")
	}
}
