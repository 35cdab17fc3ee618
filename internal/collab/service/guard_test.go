package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	t.Parallel()

	role := domain.ProjectRole{OwnerEmail: "owner@example.com"}
	inv := domain.Invitation{SenderEmail: "owner@example.com", RecipientEmail: "dev@example.com"}
	app := domain.RoleApplication{UserEmail: "dev@example.com"}

	require.True(t, IsOwner(role, "owner@example.com"))
	require.False(t, IsOwner(role, "dev@example.com"))
	require.False(t, IsOwner(domain.ProjectRole{}, ""), "empty caller never matches")

	require.True(t, IsRecipient(inv, "dev@example.com"))
	require.False(t, IsRecipient(inv, "owner@example.com"))

	require.True(t, IsSender(inv, "owner@example.com"))
	require.False(t, IsSender(inv, "dev@example.com"))

	require.True(t, IsApplicant(app, "dev@example.com"))
	require.False(t, IsApplicant(app, "Dev@example.com"))
}

func TestKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want error
	}{
		{ErrInvitationExists, ErrConflict},
		{ErrNotRecipient, ErrForbidden},
		{ErrProjectRoleNotFound, ErrNotFound},
		{ErrInvalidStatus, ErrInvalidArgument},
		{ErrInvalidRefresh, ErrUnauthorized},
		{fmt.Errorf("wrapped: %w", ErrAlreadyApplied), ErrConflict},
		{errors.New("disk on fire"), nil},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Kind(tt.err), tt.err.Error())
	}
}
