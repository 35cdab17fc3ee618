package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/innosync/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestSubjectEncoding(t *testing.T) {
	t.Run("empty email uses sentinel", func(t *testing.T) {
		require.Equal(t, jwtx.EmptySubject, jwtx.EncodeSubject(""))
		require.Equal(t, "", jwtx.DecodeSubject(jwtx.EmptySubject))
	})

	t.Run("regular email passes through", func(t *testing.T) {
		require.Equal(t, "a@x.io", jwtx.EncodeSubject("a@x.io"))
		require.Equal(t, "a@x.io", jwtx.DecodeSubject("a@x.io"))
	})
}

func TestNewAccessClaims(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	c := jwtx.NewAccessClaims("a@x.io", time.Hour, "innosync", now)

	require.Equal(t, "a@x.io", c.Email())
	require.Equal(t, "innosync", c.Issuer)
	require.Equal(t, now, c.IssuedAt.Time.UTC())
	require.Equal(t, now.Add(time.Hour), c.ExpiresAt.Time.UTC())
	require.NotEmpty(t, c.ID)
	require.NotEmpty(t, c.Nonce)

	// Same instant, same subject, still distinct
	other := jwtx.NewAccessClaims("a@x.io", time.Hour, "innosync", now)
	require.NotEqual(t, c.Nonce, other.Nonce)
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "innosync",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("innosync"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		err := c.ValidateIssuer("someone-else")
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})
}
