package signer

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/distribuidora/analise-credito/internal/core/ports"
)

func tokenOf(url string) string {
	return url[strings.LastIndex(url, "/")+1:]
}

func TestLinkSigner_RoundTrip(t *testing.T) {
	s := New("secret", "http://localhost:8080/")
	url, expires, err := s.Sign(ports.LinkClaims{Path: "a/b/1-x.pdf", FileName: "x.pdf"}, 300*time.Second)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/v1/files/") {
		t.Fatalf("unexpected url %q", url)
	}
	if d := time.Until(expires); d < 290*time.Second || d > 300*time.Second {
		t.Fatalf("unexpected expiry in %s", d)
	}

	claims, err := s.Verify(tokenOf(url))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Path != "a/b/1-x.pdf" || claims.FileName != "x.pdf" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLinkSigner_Expired(t *testing.T) {
	s := New("secret", "")
	url, _, err := s.Sign(ports.LinkClaims{Path: "p", FileName: "f"}, time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, err := s.Verify(tokenOf(url)); err != ErrInvalidLink {
		t.Fatalf("expected ErrInvalidLink, got %v", err)
	}
}

func TestLinkSigner_WrongSecret(t *testing.T) {
	url, _, _ := New("one", "").Sign(ports.LinkClaims{Path: "p"}, time.Minute)
	if _, err := New("two", "").Verify(tokenOf(url)); err != ErrInvalidLink {
		t.Fatalf("expected ErrInvalidLink, got %v", err)
	}
}

func TestLinkSigner_RejectsSessionToken(t *testing.T) {
	session := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := session.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := New("secret", "").Verify(raw); err != ErrInvalidLink {
		t.Fatalf("expected ErrInvalidLink, got %v", err)
	}
}
