package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.auth.Signup(ctx, "  Alice@Example.com ", "s3cret-password", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, pair.RefreshToken)

	sub, err := f.issuer.SubjectOf(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", sub)

	u, err := f.auth.Me(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "Alice", u.FullName)
	require.NotContains(t, u.PasswordHash, "s3cret-password")

	t.Run("taken email", func(t *testing.T) {
		_, err := f.auth.Signup(ctx, "alice@example.com", "other", "Impostor")
		require.ErrorIs(t, err, ErrEmailTaken)
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.auth.Signup(ctx, "", "pw", "x")
		require.ErrorIs(t, err, ErrInvalidArgument)
		_, err = f.auth.Signup(ctx, "b@example.com", "", "x")
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "bob@example.com")

	pair, err := f.auth.Login(ctx, "BOB@example.com", "correct horse battery staple")
	require.NoError(t, err)
	require.True(t, f.issuer.Verify(pair.AccessToken))

	_, err = f.auth.Login(ctx, "bob@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, "nobody@example.com", "correct horse battery staple")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Sessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "carol@example.com")

	laptop, err := f.auth.Login(ctx, "carol@example.com", "correct horse battery staple")
	require.NoError(t, err)
	phone, err := f.auth.Login(ctx, "carol@example.com", "correct horse battery staple")
	require.NoError(t, err)

	refreshed, err := f.auth.Refresh(ctx, laptop.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, laptop.RefreshToken, refreshed.RefreshToken)

	require.NoError(t, f.auth.Logout(ctx, laptop.RefreshToken))
	_, err = f.auth.Refresh(ctx, laptop.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = f.auth.Refresh(ctx, phone.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, f.auth.LogoutAll(ctx, "carol@example.com"))
	_, err = f.auth.Refresh(ctx, phone.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	require.ErrorIs(t, f.auth.LogoutAll(ctx, "ghost@example.com"), ErrUserNotFound)
}

func TestAuthService_Me(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Me(context.Background(), "")
	require.ErrorIs(t, err, ErrNotFound)
}
