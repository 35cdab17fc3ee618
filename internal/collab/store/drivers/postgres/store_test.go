package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/innosync/internal/collab/store"
	"github.com/aussiebroadwan/innosync/internal/collab/store/drivers/postgres"
	"github.com/aussiebroadwan/innosync/internal/collab/store/storetest"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// startPostgres boots a throwaway server and returns an opener that hands
// each caller its own freshly migrated database.
func startPostgres(t *testing.T) storetest.Opener {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("collab"),
		tcpostgres.WithUsername("collab"),
		tcpostgres.WithPassword("collab"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	admin, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = admin.Close() })

	var seq atomic.Int64
	return func(t *testing.T) store.Store {
		t.Helper()
		name := fmt.Sprintf("collab_%d", seq.Add(1))
		_, err := admin.ExecContext(ctx, "CREATE DATABASE "+name)
		require.NoError(t, err)

		u, err := url.Parse(dsn)
		require.NoError(t, err)
		u.Path = "/" + name

		s, err := postgres.NewStore(ctx, u.String(), postgres.Options{MaxOpenConns: 4})
		require.NoError(t, err)
		require.NoError(t, s.ApplyMigrations())
		t.Cleanup(func() { _ = s.Close() })
		return s
	}
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, startPostgres(t))
}

func TestDialect(t *testing.T) {
	d := postgres.Dialect{}
	require.Equal(t, "postgres", d.Name())
	require.Equal(t, "SELECT $1, $2", d.Rebind("SELECT ?, ?"))
	require.False(t, d.IsUniqueViolation(nil))
}
