package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/store"
	"github.com/aussiebroadwan/innosync/internal/collab/store/drivers/sqlite"
	"github.com/aussiebroadwan/innosync/internal/collab/store/storetest"
	"github.com/aussiebroadwan/innosync/pkg/idx"
	"github.com/stretchr/testify/require"
)

func openFile(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "collab.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, openFile)
}

func TestInMemoryStore(t *testing.T) {
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))

	// Re-applying is a no-op
	require.NoError(t, s.ApplyMigrations())

	u := storetest.SeedUser(t, s, "mem@example.com")
	got, err := s.Users().GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)
}

func TestForeignKeysEnforced(t *testing.T) {
	s := openFile(t)
	owner := storetest.SeedUser(t, s, "owner@example.com")
	role := storetest.SeedRole(t, s, owner, "Ops")

	_, err := s.TeamMembers().AddTeamMember(context.Background(), domain.TeamMember{
		ID:            idx.New().String(),
		ProjectID:     role.ProjectID,
		ProjectRoleID: role.ID,
		UserID:        "missing-user",
		JoinedAt:      time.Now().UTC(),
		JoinedVia:     domain.JoinedViaInvitation,
	})
	require.Error(t, err)
}

func TestDialect(t *testing.T) {
	d := sqlite.Dialect{}
	require.Equal(t, "sqlite", d.Name())
	require.Equal(t, "SELECT ?", d.Rebind("SELECT ?"))
	require.False(t, d.IsUniqueViolation(nil))
}
