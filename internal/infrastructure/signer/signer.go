package signer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/distribuidora/analise-credito/internal/core/ports"
)

const tokenUse = "file"

var ErrInvalidLink = errors.New("invalid or expired link")

// LinkSigner issues download links as HS256 tokens carrying the storage path.
type LinkSigner struct {
	secret  []byte
	baseURL string
	now     func() time.Time
}

// New returns a LinkSigner producing URLs under baseURL + "/v1/files/".
func New(secret, baseURL string) *LinkSigner {
	return &LinkSigner{
		secret:  []byte(secret),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

type linkClaims struct {
	Path     string `json:"path"`
	FileName string `json:"name"`
	Use      string `json:"use"`
	jwt.RegisteredClaims
}

func (s *LinkSigner) Sign(c ports.LinkClaims, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, linkClaims{
		Path:     c.Path,
		FileName: c.FileName,
		Use:      tokenUse,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign link: %w", err)
	}
	return s.baseURL + "/v1/files/" + signed, expires, nil
}

// Verify checks signature, expiry and purpose. Session tokens signed with the
// same secret are rejected because they carry no file use claim.
func (s *LinkSigner) Verify(raw string) (ports.LinkClaims, error) {
	var c linkClaims
	token, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return ports.LinkClaims{}, ErrInvalidLink
	}
	if c.Use != tokenUse || c.Path == "" {
		return ports.LinkClaims{}, ErrInvalidLink
	}
	return ports.LinkClaims{Path: c.Path, FileName: c.FileName}, nil
}
