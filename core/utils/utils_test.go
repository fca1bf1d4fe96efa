package utils

import (
	"os"
	"testing"

	"campus-events-api/core/config"

	"github.com/google/uuid"
)

func TestMain(m *testing.M) {
	if _, err := config.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "password123" {
		t.Fatalf("hash equals plaintext")
	}
	if !ComparePassword(hash, "password123") {
		t.Fatalf("correct password rejected")
	}
	if ComparePassword(hash, "password124") {
		t.Fatalf("wrong password accepted")
	}
}

func TestTokenPairRoundTrip(t *testing.T) {
	userID := uuid.New()
	pair, err := GenerateTokenPair(userID, "huimin@snu.ac.kr")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	claims, err := ValidateAndParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAndParseToken: %v", err)
	}
	if claims.UserID != userID || claims.Email != "huimin@snu.ac.kr" {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	refreshClaims, err := ValidateAndParseRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ValidateAndParseRefreshToken: %v", err)
	}
	if refreshClaims.UserID != userID {
		t.Fatalf("refresh claims mismatch: %+v", refreshClaims)
	}

	// tokens are not interchangeable across secrets
	if _, err := ValidateAndParseToken(pair.RefreshToken); err == nil {
		t.Fatalf("refresh token accepted as access token")
	}
	if _, err := ValidateAndParseToken("not-a-token"); err == nil {
		t.Fatalf("garbage token accepted")
	}
}

func TestGenerateID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if len(id) != 7 {
			t.Fatalf("expected 7-char id, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
