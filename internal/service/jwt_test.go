package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAdminJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	tok, err := GenerateAdminJWT("ops@earn")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	sub, err := ParseAdminJWT(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub != "ops@earn" {
		t.Fatalf("expected ops@earn, got %q", sub)
	}
}

func TestParseAdminJWTRejects(t *testing.T) {
	InitJWT("test-secret")

	sign := func(secret string, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
	future := time.Now().Add(time.Hour).Unix()

	cases := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": sign("other", jwt.MapClaims{"sub": "a", "role": "admin", "exp": future}),
		"expired":      sign("test-secret", jwt.MapClaims{"sub": "a", "role": "admin", "exp": time.Now().Add(-time.Hour).Unix()}),
		"no exp":       sign("test-secret", jwt.MapClaims{"sub": "a", "role": "admin"}),
		"not admin":    sign("test-secret", jwt.MapClaims{"sub": "a", "role": "user", "exp": future}),
		"no subject":   sign("test-secret", jwt.MapClaims{"role": "admin", "exp": future}),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseAdminJWT(tok); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestInitJWTPanicsOnEmptySecret(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	InitJWT("")
}
