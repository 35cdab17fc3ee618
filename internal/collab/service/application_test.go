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

func TestApplication_Scenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	a := f.user(t, "applicant@example.com")
	u := f.user(t, "outsider@example.com")
	role := f.role(t, r, "Backend")

	app, err := f.apps.Apply(ctx, role.ID, a.Email)
	require.NoError(t, err)
	require.Equal(t, domain.ApplicationPending, app.Status)
	require.Nil(t, app.UpdatedAt)

	_, err = f.apps.Apply(ctx, role.ID, a.Email)
	require.ErrorIs(t, err, ErrAlreadyApplied)

	f.clock.Advance(time.Minute)
	accepted, err := f.apps.Decide(ctx, app.ID, domain.ApplicationAccepted, r.Email)
	require.NoError(t, err)
	require.Equal(t, domain.ApplicationAccepted, accepted.Status)
	require.NotNil(t, accepted.UpdatedAt)
	require.True(t, f.clock.Now().Equal(*accepted.UpdatedAt))

	_, err = f.apps.Decide(ctx, app.ID, domain.ApplicationRejected, u.Email)
	require.ErrorIs(t, err, ErrForbidden)

	team, err := f.team.ListByProject(ctx, role.ProjectID)
	require.NoError(t, err)
	require.Len(t, team, 1)
	require.Equal(t, domain.JoinedViaApplication, team[0].JoinedVia)
}

func TestApplication_RejectedStaysBlocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	a := f.user(t, "applicant@example.com")
	role := f.role(t, r, "Backend")

	app, err := f.apps.Apply(ctx, role.ID, a.Email)
	require.NoError(t, err)
	_, err = f.apps.Decide(ctx, app.ID, domain.ApplicationRejected, r.Email)
	require.NoError(t, err)

	_, err = f.apps.Apply(ctx, role.ID, a.Email)
	require.ErrorIs(t, err, ErrConflict, "one application per role, whatever its outcome")
}

// Unlike invitations, decided applications can be decided again.
func TestApplication_RedecideIsAllowed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	a := f.user(t, "applicant@example.com")
	role := f.role(t, r, "Backend")

	app, err := f.apps.Apply(ctx, role.ID, a.Email)
	require.NoError(t, err)

	_, err = f.apps.Decide(ctx, app.ID, domain.ApplicationAccepted, r.Email)
	require.NoError(t, err)
	team, err := f.team.ListByProject(ctx, role.ProjectID)
	require.NoError(t, err)
	require.Len(t, team, 1)

	rejected, err := f.apps.Decide(ctx, app.ID, domain.ApplicationRejected, r.Email)
	require.NoError(t, err)
	require.Equal(t, domain.ApplicationRejected, rejected.Status)
	team, err = f.team.ListByProject(ctx, role.ProjectID)
	require.NoError(t, err)
	require.Empty(t, team)

	_, err = f.apps.Decide(ctx, app.ID, domain.ApplicationAccepted, r.Email)
	require.NoError(t, err)
	team, err = f.team.ListByProject(ctx, role.ProjectID)
	require.NoError(t, err)
	require.Len(t, team, 1)
}

func TestApplication_RejectKeepsInvitationMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	a := f.user(t, "applicant@example.com")
	role := f.role(t, r, "Backend")

	app, err := f.apps.Apply(ctx, role.ID, a.Email)
	require.NoError(t, err)

	inv, err := f.invites.Create(ctx, role.ID, a.ID, r.Email)
	require.NoError(t, err)
	_, err = f.invites.Respond(ctx, inv.ID, domain.InvitationAccepted, a.Email)
	require.NoError(t, err)

	_, err = f.apps.Decide(ctx, app.ID, domain.ApplicationRejected, r.Email)
	require.NoError(t, err)

	team, err := f.team.ListByProject(ctx, role.ProjectID)
	require.NoError(t, err)
	require.Len(t, team, 1)
	require.Equal(t, domain.JoinedViaInvitation, team[0].JoinedVia)
}

// Accepting an invitation after the application was accepted hands the
// membership over to the invitation, which a rejection cannot undo.
func TestApplication_RejectKeepsMembershipOfLaterInvitation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	a := f.user(t, "applicant@example.com")
	role := f.role(t, r, "Backend")

	app, err := f.apps.Apply(ctx, role.ID, a.Email)
	require.NoError(t, err)
	_, err = f.apps.Decide(ctx, app.ID, domain.ApplicationAccepted, r.Email)
	require.NoError(t, err)

	inv, err := f.invites.Create(ctx, role.ID, a.ID, r.Email)
	require.NoError(t, err)
	_, err = f.invites.Respond(ctx, inv.ID, domain.InvitationAccepted, a.Email)
	require.NoError(t, err)

	team, err := f.team.ListByProject(ctx, role.ProjectID)
	require.NoError(t, err)
	require.Len(t, team, 1)
	require.Equal(t, domain.JoinedViaInvitation, team[0].JoinedVia)

	_, err = f.apps.Decide(ctx, app.ID, domain.ApplicationRejected, r.Email)
	require.NoError(t, err)

	team, err = f.team.ListByProject(ctx, role.ProjectID)
	require.NoError(t, err)
	require.Len(t, team, 1)
	require.Equal(t, a.ID, team[0].UserID)
	require.Equal(t, domain.JoinedViaInvitation, team[0].JoinedVia)
}

// A duplicate that slips past the existence check is still caught by the
// unique index and reported the same way.
func TestApplication_InsertConflictIsAlreadyApplied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	a := f.user(t, "applicant@example.com")
	role := f.role(t, r, "Backend")

	_, err := f.apps.Apply(ctx, role.ID, a.Email)
	require.NoError(t, err)

	blind := &ApplicationService{Store: staleStore{f.store}, Now: f.clock.Now}
	_, err = blind.Apply(ctx, role.ID, a.Email)
	require.ErrorIs(t, err, ErrAlreadyApplied)

	mine, err := f.apps.ListForUser(ctx, a.Email)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestApplication_Guards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	a := f.user(t, "applicant@example.com")
	u := f.user(t, "outsider@example.com")
	role := f.role(t, r, "Backend")

	_, err := f.apps.Apply(ctx, idx.New().String(), a.Email)
	require.ErrorIs(t, err, ErrProjectRoleNotFound)
	_, err = f.apps.Apply(ctx, role.ID, "ghost@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = f.apps.Apply(ctx, "", a.Email)
	require.ErrorIs(t, err, ErrInvalidArgument)

	app, err := f.apps.Apply(ctx, role.ID, a.Email)
	require.NoError(t, err)

	_, err = f.apps.Decide(ctx, idx.New().String(), domain.ApplicationAccepted, r.Email)
	require.ErrorIs(t, err, ErrApplicationNotFound)
	_, err = f.apps.Decide(ctx, app.ID, domain.ApplicationPending, r.Email)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// The applicant cannot decide their own application
	_, err = f.apps.Decide(ctx, app.ID, domain.ApplicationAccepted, a.Email)
	require.ErrorIs(t, err, ErrNotProjectOwner)

	stored, err := f.store.Applications().GetApplicationByID(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ApplicationPending, stored.Status)

	_, err = f.apps.ListForRole(ctx, role.ID, u.Email)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = f.apps.ListForRole(ctx, idx.New().String(), r.Email)
	require.ErrorIs(t, err, ErrNotFound)

	list, err := f.apps.ListForRole(ctx, role.ID, r.Email)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, IsApplicant(list[0], a.Email))

	mine, err := f.apps.ListForUser(ctx, a.Email)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, r.Email, mine[0].OwnerEmail)
}

func TestApplication_ConcurrentApply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.user(t, "recruiter@example.com")
	a := f.user(t, "applicant@example.com")
	role := f.role(t, r, "Backend")

	var created atomic.Int32
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			_, err := f.apps.Apply(ctx, role.ID, a.Email)
			if err == nil {
				created.Add(1)
				return nil
			}
			if errors.Is(err, ErrAlreadyApplied) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
	require.EqualValues(t, 1, created.Load())
}
