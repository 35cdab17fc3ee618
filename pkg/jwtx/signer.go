package jwtx

// Issuer mints access tokens for an email subject.
type Issuer interface {
	Issue(email string) (string, error)
}
