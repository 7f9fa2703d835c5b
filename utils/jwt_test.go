package utils

import (
	"testing"
	"time"
)

func TestJWTRoundtrip(t *testing.T) {
	token, err := GenerateJWT("secret", "user-1", "consultant", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ParseJWT("secret", token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "user-1" || claims.Role != "consultant" {
		t.Fatalf("bad claims: %+v", claims)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret", "user-1", "user", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseJWT("other", token); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	token, err := GenerateJWT("secret", "user-1", "user", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseJWT("secret", token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}
