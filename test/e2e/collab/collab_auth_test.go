package collab_test

import (
	"testing"

	"github.com/aussiebroadwan/innosync/internal/collab/app"
	"github.com/aussiebroadwan/innosync/pkg/collabsdk"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginRefreshLogout(t *testing.T) {
	client := setupCollabServer(t)
	ctx := t.Context()

	sess, _ := signup(t, client, "ada@example.com")

	_, err := client.Signup(ctx, collabsdk.SignupRequest{Email: "ADA@example.com", Password: password})
	require.ErrorIs(t, err, collabsdk.ErrConflict)

	_, err = client.Login(ctx, "ada@example.com", "wrong password!")
	require.ErrorIs(t, err, collabsdk.ErrInvalidCredentials)

	second, err := client.Login(ctx, "Ada@Example.com", password)
	require.NoError(t, err)
	require.NotEqual(t, sess.RefreshToken(), second.RefreshToken())

	// Reuse keeps the refresh token when rotation is off
	before := second.RefreshToken()
	require.NoError(t, second.Refresh(ctx))
	require.Equal(t, before, second.RefreshToken())

	require.NoError(t, second.Logout(ctx))
	require.ErrorIs(t, second.Refresh(ctx), collabsdk.ErrInvalidGrant)

	// Logging out twice is fine
	require.NoError(t, client.Logout(ctx, before))

	// The first session is unaffected
	me, err := sess.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", me.Email)
}

func TestLogoutAll(t *testing.T) {
	client := setupCollabServer(t)
	ctx := t.Context()

	a, _ := signup(t, client, "ada@example.com")
	b, err := client.Login(ctx, "ada@example.com", password)
	require.NoError(t, err)

	require.NoError(t, a.LogoutAll(ctx))

	_, err = client.Refresh(ctx, a.RefreshToken())
	require.ErrorIs(t, err, collabsdk.ErrInvalidGrant)
	_, err = client.Refresh(ctx, b.RefreshToken())
	require.ErrorIs(t, err, collabsdk.ErrInvalidGrant)
}

func TestRefreshRotation(t *testing.T) {
	client := setupCollabServer(t, func(cfg *app.Config) {
		cfg.RotateRefreshOnUse = true
	})
	ctx := t.Context()

	sess, _ := signup(t, client, "ada@example.com")
	old := sess.RefreshToken()

	require.NoError(t, sess.Refresh(ctx))
	require.NotEqual(t, old, sess.RefreshToken())

	_, err := client.Refresh(ctx, old)
	require.ErrorIs(t, err, collabsdk.ErrInvalidGrant)
}

func TestHealth(t *testing.T) {
	client := setupCollabServer(t)

	live, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Signer)
}
