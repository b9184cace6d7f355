package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, "owner", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if time.Until(at.Exp) <= 0 {
		t.Fatalf("expiry must be in the future")
	}

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method %v", tk.Method)
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse: %v valid=%v", err, tok.Valid)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["role"] != "owner" {
		t.Fatalf("role claim = %v", claims["role"])
	}
	if uint64(claims["sub"].(float64)) != 42 {
		t.Fatalf("sub claim = %v", claims["sub"])
	}
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	at, err := NewAccessToken("right", 1, "renter", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	if err == nil && tok.Valid {
		t.Fatalf("token must not validate under a different secret")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("raw length = %d, want 96", len(rt.Raw))
	}
	h1 := HashRefreshRaw(rt.Raw)
	h2 := HashRefreshRaw(rt.Raw)
	if h1 != h2 {
		t.Fatalf("hash must be deterministic")
	}
	if h1 == rt.Raw {
		t.Fatalf("hash must differ from raw token")
	}

	other, _ := NewRefreshToken(7)
	if HashRefreshRaw(other.Raw) == h1 {
		t.Fatalf("distinct tokens must hash differently")
	}
}
