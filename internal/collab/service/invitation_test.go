package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/pkg/idx"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestInvitation_DeclineThenAccept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	d := f.user(t, "dev@example.com")
	role := f.role(t, r, "Backend")

	inv, err := f.invites.Create(ctx, role.ID, d.ID, r.Email)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationInvited, inv.Status)
	require.Nil(t, inv.RespondedAt)

	declined, err := f.invites.Respond(ctx, inv.ID, domain.InvitationDeclined, d.Email)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationDeclined, declined.Status)
	require.NotNil(t, declined.RespondedAt)

	_, err = f.invites.Respond(ctx, inv.ID, domain.InvitationAccepted, d.Email)
	require.ErrorIs(t, err, ErrConflict)

	team, err := f.team.ListByProject(ctx, role.ProjectID)
	require.NoError(t, err)
	require.Empty(t, team)
}

func TestInvitation_CreateGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	d := f.user(t, "dev@example.com")
	u := f.user(t, "outsider@example.com")
	role := f.role(t, r, "Backend")

	tests := []struct {
		name                   string
		roleID, recipient, who string
		want                   error
	}{
		{"missing role", "", d.ID, r.Email, ErrInvalidArgument},
		{"missing recipient", role.ID, "", r.Email, ErrInvalidArgument},
		{"missing caller", role.ID, d.ID, "", ErrInvalidArgument},
		{"unknown role", idx.New().String(), d.ID, r.Email, ErrProjectRoleNotFound},
		{"not owner", role.ID, d.ID, u.Email, ErrNotProjectOwner},
		{"unknown recipient", role.ID, idx.New().String(), r.Email, ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.invites.Create(ctx, tt.roleID, tt.recipient, tt.who)
			require.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("role is checked before ownership", func(t *testing.T) {
		_, err := f.invites.Create(ctx, idx.New().String(), d.ID, u.Email)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate open invitation", func(t *testing.T) {
		_, err := f.invites.Create(ctx, role.ID, d.ID, r.Email)
		require.NoError(t, err)
		_, err = f.invites.Create(ctx, role.ID, d.ID, r.Email)
		require.ErrorIs(t, err, ErrInvitationExists)
	})
}

func TestInvitation_ConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	d := f.user(t, "dev@example.com")
	role := f.role(t, r, "Backend")

	var created, conflicts atomic.Int32
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			_, err := f.invites.Create(ctx, role.ID, d.ID, r.Email)
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, ErrConflict):
				conflicts.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.EqualValues(t, 1, created.Load())
	require.EqualValues(t, 7, conflicts.Load())

	received, err := f.invites.ListReceived(ctx, d.Email)
	require.NoError(t, err)
	require.Len(t, received, 1)
}

func TestInvitation_InsertConflictIsInvitationExists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.user(t, "owner@example.com")
	d := f.user(t, "dev@example.com")
	role := f.role(t, o, "Backend")

	_, err := f.invites.Create(ctx, role.ID, d.ID, o.Email)
	require.NoError(t, err)

	blind := &InvitationService{Store: staleStore{f.store}, Now: f.clock.Now}
	_, err = blind.Create(ctx, role.ID, d.ID, o.Email)
	require.ErrorIs(t, err, ErrInvitationExists)

	received, err := f.invites.ListReceived(ctx, d.Email)
	require.NoError(t, err)
	require.Len(t, received, 1)
}

func TestInvitation_RespondTwiceKeepsFirstTimestamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	d := f.user(t, "dev@example.com")
	role := f.role(t, r, "Backend")

	inv, err := f.invites.Create(ctx, role.ID, d.ID, r.Email)
	require.NoError(t, err)

	first, err := f.invites.Respond(ctx, inv.ID, domain.InvitationAccepted, d.Email)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	_, err = f.invites.Respond(ctx, inv.ID, domain.InvitationDeclined, d.Email)
	require.ErrorIs(t, err, ErrInvitationClosed)

	stored, err := f.store.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationAccepted, stored.Status)
	require.True(t, first.RespondedAt.Equal(*stored.RespondedAt))
}

func TestInvitation_ConcurrentResponses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	d := f.user(t, "dev@example.com")
	role := f.role(t, r, "Backend")

	inv, err := f.invites.Create(ctx, role.ID, d.ID, r.Email)
	require.NoError(t, err)

	var wins atomic.Int32
	var g errgroup.Group
	for i := range 6 {
		status := domain.InvitationAccepted
		if i%2 == 1 {
			status = domain.InvitationDeclined
		}
		g.Go(func() error {
			_, err := f.invites.Respond(ctx, inv.ID, status, d.Email)
			if err == nil {
				wins.Add(1)
				return nil
			}
			if errors.Is(err, ErrConflict) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
	require.EqualValues(t, 1, wins.Load())
}

func TestInvitation_RespondGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	d := f.user(t, "dev@example.com")
	role := f.role(t, r, "Backend")

	inv, err := f.invites.Create(ctx, role.ID, d.ID, r.Email)
	require.NoError(t, err)

	_, err = f.invites.Respond(ctx, idx.New().String(), domain.InvitationAccepted, d.Email)
	require.ErrorIs(t, err, ErrInvitationNotFound)

	_, err = f.invites.Respond(ctx, inv.ID, domain.InvitationAccepted, r.Email)
	require.ErrorIs(t, err, ErrNotRecipient)

	for _, bad := range []domain.InvitationStatus{domain.InvitationRevoked, domain.InvitationPending, domain.InvitationExpired, "MAYBE"} {
		_, err = f.invites.Respond(ctx, inv.ID, bad, d.Email)
		require.ErrorIs(t, err, ErrInvalidArgument, string(bad))
	}
}

func TestInvitation_AcceptJoinsTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	d := f.user(t, "dev@example.com")
	role := f.role(t, r, "Backend")

	inv, err := f.invites.Create(ctx, role.ID, d.ID, r.Email)
	require.NoError(t, err)
	_, err = f.invites.Respond(ctx, inv.ID, domain.InvitationAccepted, d.Email)
	require.NoError(t, err)

	team, err := f.team.ListByProject(ctx, role.ProjectID)
	require.NoError(t, err)
	require.Len(t, team, 1)
	require.Equal(t, d.ID, team[0].UserID)
	require.Equal(t, domain.JoinedViaInvitation, team[0].JoinedVia)

	// A second accepted invitation for the same role does not duplicate the membership
	again, err := f.invites.Create(ctx, role.ID, d.ID, r.Email)
	require.NoError(t, err)
	_, err = f.invites.Respond(ctx, again.ID, domain.InvitationAccepted, d.Email)
	require.NoError(t, err)

	mine, err := f.team.ListByUser(ctx, d.Email)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestInvitation_Revoke(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	d := f.user(t, "dev@example.com")
	role := f.role(t, r, "Backend")

	inv, err := f.invites.Create(ctx, role.ID, d.ID, r.Email)
	require.NoError(t, err)

	_, err = f.invites.Revoke(ctx, inv.ID, d.Email)
	require.ErrorIs(t, err, ErrNotSender)

	revoked, err := f.invites.Revoke(ctx, inv.ID, r.Email)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationRevoked, revoked.Status)
	require.NotNil(t, revoked.RespondedAt)

	_, err = f.invites.Revoke(ctx, inv.ID, r.Email)
	require.ErrorIs(t, err, ErrConflict)
	_, err = f.invites.Respond(ctx, inv.ID, domain.InvitationAccepted, d.Email)
	require.ErrorIs(t, err, ErrConflict)

	// The pair is free to be invited again
	_, err = f.invites.Create(ctx, role.ID, d.ID, r.Email)
	require.NoError(t, err)
}

func TestInvitation_ListReceivedNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	d := f.user(t, "dev@example.com")

	var sent []string
	for _, name := range []string{"Backend", "Frontend", "Ops"} {
		role := f.role(t, r, name)
		inv, err := f.invites.Create(ctx, role.ID, d.ID, r.Email)
		require.NoError(t, err)
		sent = append(sent, inv.ID)
		f.clock.Advance(time.Minute)
	}

	received, err := f.invites.ListReceived(ctx, d.Email)
	require.NoError(t, err)
	require.Len(t, received, 3)
	require.Equal(t, []string{sent[2], sent[1], sent[0]}, []string{received[0].ID, received[1].ID, received[2].ID})

	out, err := f.invites.ListSent(ctx, r.Email)
	require.NoError(t, err)
	require.Len(t, out, 3)

	none, err := f.invites.ListSent(ctx, d.Email)
	require.NoError(t, err)
	require.Empty(t, none)
}
