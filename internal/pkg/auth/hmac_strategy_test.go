package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewHMACStrategy_Defaults(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if string(strategy.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.ttl != defaultTokenTTL {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
	if strategy.now == nil {
		t.Fatal("expected default clock")
	}
}

func TestHMACStrategy_IssueAndParse(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	customerID, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if customerID != 42 {
		t.Fatalf("unexpected customer id: %d", customerID)
	}
}

func TestHMACStrategy_IssueRejectsInvalidID(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if _, err := strategy.IssueToken(0); err == nil {
		t.Fatal("expected error for zero customer id")
	}
}

func TestHMACStrategy_RejectsForeignSecret(t *testing.T) {
	token, err := NewHMACStrategy("one", Options{}).IssueToken(5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := NewHMACStrategy("two", Options{}).ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ParseMalformed(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	future := time.Now().Add(time.Minute).Unix()
	signed := func(payload string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(payload + ":" + strategy.sign(payload)))
	}

	cases := map[string]string{
		"not base64":      "%%%",
		"two parts":       base64.RawURLEncoding.EncodeToString([]byte("only:two")),
		"bad customer id": signed(fmt.Sprintf("abc:%d", future)),
		"negative id":     signed(fmt.Sprintf("-3:%d", future)),
		"bad expiry":      signed("10:not-a-number"),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestHMACStrategy_ParseTampered(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(7)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	parts := strings.Split(string(raw), ":")
	parts[0] = "8"
	tampered := base64.RawURLEncoding.EncodeToString([]byte(strings.Join(parts, ":")))
	if _, err := strategy.ParseToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_Expiry(t *testing.T) {
	issuedAt := time.Unix(1_700_000_000, 0)
	issuer := NewHMACStrategy("secret", Options{TTL: time.Hour, Now: fixedClock(issuedAt)})
	token, err := issuer.IssueToken(3)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	stillValid := NewHMACStrategy("secret", Options{Now: fixedClock(issuedAt.Add(59 * time.Minute))})
	if _, err := stillValid.ParseToken(token); err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}

	expired := NewHMACStrategy("secret", Options{Now: fixedClock(issuedAt.Add(time.Hour))})
	if _, err := expired.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_Name(t *testing.T) {
	if name := NewHMACStrategy("secret", Options{}).Name(); name != "hmac-sha256" {
		t.Fatalf("unexpected name: %s", name)
	}
}
