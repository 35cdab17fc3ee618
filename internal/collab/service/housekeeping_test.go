package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/innosync/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingService_Sweep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@example.com")

	// Signup already opened one session; back-date two more
	f.clock.Advance(-30 * 24 * time.Hour)
	_, err := f.sessions.Create(ctx, u)
	require.NoError(t, err)
	_, err = f.sessions.Create(ctx, u)
	require.NoError(t, err)

	hk := NewHousekeepingService(f.store, slogx.Discard(), time.Hour)
	require.EqualValues(t, 2, hk.Sweep(ctx))
	require.EqualValues(t, 0, hk.Sweep(ctx))
}

func TestHousekeepingService_StartStop(t *testing.T) {
	f := newFixture(t)

	hk := NewHousekeepingService(f.store, slogx.Discard(), 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}
