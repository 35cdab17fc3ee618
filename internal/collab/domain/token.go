package domain

import "time"

// TokenPair is what the auth endpoints hand back: a short-lived access
// token (JWT) and the opaque refresh token.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type,omitempty"` // always "Bearer"
	ExpiresIn    time.Duration `json:"expires_in"`           // seconds until the access token expires
}

// RefreshToken models the stored refresh token record. Only the fingerprint
// of the opaque value is persisted.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // base64url SHA-256 of the opaque token
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IssuedRefreshToken pairs the opaque value, shown to the client exactly
// once, with its stored record.
type IssuedRefreshToken struct {
	Token  string
	Record RefreshToken
}
