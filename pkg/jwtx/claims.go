package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants for the collaboration service.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 10 * 24 * time.Hour

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// EmptySubject stands in for an empty email in the "sub" claim. An empty
// claim is dropped by the JSON encoder, so the sentinel keeps the round trip
// lossless.
const EmptySubject = "<<EMPTY>>"

// Claims are the access-token claims. The subject is the caller's email.
type Claims struct {
	jwt.RegisteredClaims

	// Nonce is random per issued token so two tokens minted for the same
	// subject in the same second never compare equal.
	Nonce string `json:"nonce"`
}

// NewAccessClaims builds claims for the given email.
func NewAccessClaims(email string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   EncodeSubject(email),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Nonce: newNonce(),
	}
}

// Email returns the decoded subject.
func (c *Claims) Email() string {
	return DecodeSubject(c.Subject)
}

// EncodeSubject maps an email onto the "sub" claim value.
func EncodeSubject(email string) string {
	if email == "" {
		return EmptySubject
	}
	return email
}

// DecodeSubject reverses EncodeSubject.
func DecodeSubject(sub string) string {
	if sub == EmptySubject {
		return ""
	}
	return sub
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

func newNonce() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}
