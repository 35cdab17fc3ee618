package jwtx

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinHS256KeySize is the smallest HMAC key accepted, matching the SHA-256
// block output.
const MinHS256KeySize = 32

// HS256Issuer signs and verifies access tokens with a shared HMAC key.
type HS256Issuer struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// HS256Option tweaks an HS256Issuer.
type HS256Option func(*HS256Issuer)

// WithClock overrides the time source, mostly for tests.
func WithClock(now func() time.Time) HS256Option {
	return func(i *HS256Issuer) { i.now = now }
}

// WithIssuer sets the "iss" claim and enforces it on verification.
func WithIssuer(iss string) HS256Option {
	return func(i *HS256Issuer) { i.issuer = iss }
}

// NewHS256Issuer creates an issuer from an existing key.
func NewHS256Issuer(key []byte, ttl time.Duration, opts ...HS256Option) (*HS256Issuer, error) {
	if len(key) < MinHS256KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrWeakKey, len(key), MinHS256KeySize)
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	i := &HS256Issuer{
		key: append([]byte(nil), key...),
		ttl: ttl,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// NewEphemeralHS256Issuer creates an issuer with a freshly generated key.
// Tokens it mints die with the process.
func NewEphemeralHS256Issuer(ttl time.Duration, opts ...HS256Option) (*HS256Issuer, error) {
	key, err := GenerateHS256Key()
	if err != nil {
		return nil, err
	}
	return NewHS256Issuer(key, ttl, opts...)
}

// GenerateHS256Key returns a random key of MinHS256KeySize bytes.
func GenerateHS256Key() ([]byte, error) {
	key := make([]byte, MinHS256KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("jwtx: generate hs256 key: %w", err)
	}
	return key, nil
}

// TTL returns the access-token lifetime.
func (i *HS256Issuer) TTL() time.Duration { return i.ttl }

// Sign turns the claims into a signed compact JWT.
func (i *HS256Issuer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.key)
}

// Issue mints an access token for email.
func (i *HS256Issuer) Issue(email string) (string, error) {
	return i.Sign(NewAccessClaims(email, i.ttl, i.issuer, i.now()))
}

// Parse validates signature, algorithm and expiry and returns the claims.
func (i *HS256Issuer) Parse(token string) (Claims, error) {
	c, err := i.parse(token, true)
	if err != nil {
		return Claims{}, err
	}
	if err := c.ValidateIssuer(i.issuer); err != nil {
		return Claims{}, err
	}
	return *c, nil
}

// Verify reports whether token is well formed, correctly signed and not
// expired. It never panics.
func (i *HS256Issuer) Verify(token string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if token == "" {
		return false
	}
	_, err := i.Parse(token)
	return err == nil
}

// SubjectOf returns the email carried by a valid token.
func (i *HS256Issuer) SubjectOf(token string) (string, error) {
	c, err := i.Parse(token)
	if err != nil {
		return "", err
	}
	return c.Email(), nil
}

// ExpiryOf returns the "exp" claim of a correctly signed token, expired or
// not.
func (i *HS256Issuer) ExpiryOf(token string) (time.Time, error) {
	c, err := i.parse(token, false)
	if err != nil {
		return time.Time{}, err
	}
	if c.ExpiresAt == nil {
		return time.Time{}, ErrMalformed
	}
	return c.ExpiresAt.Time, nil
}

// IsExpired reports whether the token's expiry lies in the past. Tokens
// that cannot be parsed count as expired.
func (i *HS256Issuer) IsExpired(token string) bool {
	exp, err := i.ExpiryOf(token)
	if err != nil {
		return true
	}
	return exp.Before(i.now())
}

func (i *HS256Issuer) parse(token string, validate bool) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	}
	if validate {
		opts = append(opts, jwt.WithExpirationRequired())
	} else {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &Claims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrAlgMismatch
		}
		return i.key, nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}
	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, ErrAlgMismatch), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrAlgMismatch
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
