package collab_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/app"
	"github.com/aussiebroadwan/innosync/pkg/collabsdk"
	"github.com/stretchr/testify/require"
)

/*
 * Helpers for collaboration service end-to-end tests. Each test boots the
 * full application in-process on a fresh SQLite file and talks to it
 * through the SDK only.
 */

const password = "correct horse battery staple"

// setupCollabServer starts the application and returns a client for it.
func setupCollabServer(t *testing.T, mutate ...func(*app.Config)) *collabsdk.Client {
	t.Helper()

	dir := t.TempDir()
	cfg := app.Config{
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 8080,
		ShutdownGracePeriod:  5 * time.Second,
		HousekeepingInterval: time.Hour,
		DatabaseDriver:       app.DriverSQLite,
		DatabaseFile:         filepath.Join(dir, "collab.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		Issuer:               "innosync-test",
		AccessTTL:            time.Hour,
		RefreshTTL:           24 * time.Hour,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	require.NoError(t, cfg.Validate())

	application, err := app.New(t.Context(), cfg)
	require.NoError(t, err)
	application.StartWorkers()

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		require.NoError(t, application.Shutdown())
	})

	return collabsdk.NewClient(srv.URL)
}

// signup registers email and returns its session and user ID.
func signup(t *testing.T, client *collabsdk.Client, email string) (*collabsdk.Session, string) {
	t.Helper()
	ctx := context.Background()

	sess, err := client.Signup(ctx, collabsdk.SignupRequest{
		Email:    email,
		Password: password,
		FullName: email,
	})
	require.NoError(t, err)

	me, err := sess.Me(ctx)
	require.NoError(t, err)
	return sess, me.ID
}

// openRole creates a project owned by sess with a single role.
func openRole(t *testing.T, sess *collabsdk.Session, title, roleName string) *collabsdk.RoleResponse {
	t.Helper()
	ctx := context.Background()

	project, err := sess.CreateProject(ctx, title)
	require.NoError(t, err)

	role, err := sess.AddRole(ctx, project.ID, collabsdk.CreateRoleRequest{
		RoleName:       roleName,
		ExpertiseLevel: "MIDDLE",
		Technologies:   []string{"Go", "PostgreSQL"},
	})
	require.NoError(t, err)
	return role
}
