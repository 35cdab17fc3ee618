package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stubTracing replaces the tracer setup and counts shutdown calls.
func stubTracing(t *testing.T) *int {
	t.Helper()
	calls := new(int)
	prev := setupTracing
	setupTracing = func(context.Context, string, string, string) (func(context.Context) error, error) {
		return func(context.Context) error {
			*calls++
			return nil
		}, nil
	}
	t.Cleanup(func() { setupTracing = prev })
	return calls
}

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	return Config{
		Env:                  "test",
		LogLevel:             "error",
		DatabaseDriver:       DriverSQLite,
		DatabaseFile:         filepath.Join(dir, "collab.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		Issuer:               "innosync",
		AccessTTL:            time.Hour,
		RefreshTTL:           time.Hour,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestNewShutsDownTracerOnFailure(t *testing.T) {
	t.Run("bad signing key", func(t *testing.T) {
		calls := stubTracing(t)
		cfg := testConfig(t)
		cfg.SigningKey = "%%%"

		_, err := New(context.Background(), cfg)
		require.Error(t, err)
		require.Equal(t, 1, *calls)
	})

	t.Run("unusable database path", func(t *testing.T) {
		calls := stubTracing(t)
		cfg := testConfig(t)
		cfg.DatabaseFile = filepath.Join(t.TempDir(), "missing", "collab.db")

		_, err := New(context.Background(), cfg)
		require.Error(t, err)
		require.Equal(t, 1, *calls)
	})

	t.Run("pepper path is a directory", func(t *testing.T) {
		calls := stubTracing(t)
		cfg := testConfig(t)
		cfg.PepperFile = t.TempDir()

		_, err := New(context.Background(), cfg)
		require.Error(t, err)
		require.Equal(t, 1, *calls)
	})
}

func TestNewKeepsTracerOnSuccess(t *testing.T) {
	calls := stubTracing(t)

	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	require.Zero(t, *calls)

	a.StartWorkers()
	require.NoError(t, a.Shutdown())
	require.Equal(t, 1, *calls)
}
