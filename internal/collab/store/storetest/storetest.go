// Package storetest holds the behaviour every store.Store driver must share.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/store"
	"github.com/aussiebroadwan/innosync/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Opener returns a migrated, empty store. It should register cleanup itself.
type Opener func(t *testing.T) store.Store

// Run exercises a driver against the shared contract.
func Run(t *testing.T, open Opener) {
	t.Run("users", func(t *testing.T) { testUsers(t, open(t)) })
	t.Run("refresh tokens", func(t *testing.T) { testRefreshTokens(t, open(t)) })
	t.Run("projects", func(t *testing.T) { testProjects(t, open(t)) })
	t.Run("invitations", func(t *testing.T) { testInvitations(t, open(t)) })
	t.Run("applications", func(t *testing.T) { testApplications(t, open(t)) })
	t.Run("team members", func(t *testing.T) { testTeamMembers(t, open(t)) })
	t.Run("transactions", func(t *testing.T) { testTransactions(t, open(t)) })
}

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// SeedUser inserts a user with the given email.
func SeedUser(t *testing.T, s store.Store, email string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "$argon2id$stub",
		FullName:     email,
		CreatedAt:    base,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

// SeedRole inserts a project owned by owner with a single role.
func SeedRole(t *testing.T, s store.Store, owner domain.User, name string) domain.ProjectRole {
	t.Helper()
	ctx := context.Background()

	p := domain.Project{ID: idx.New().String(), Title: name + " project", OwnerID: owner.ID, CreatedAt: base}
	require.NoError(t, s.Projects().CreateProject(ctx, p))

	r := domain.ProjectRole{
		ID:             idx.New().String(),
		ProjectID:      p.ID,
		RoleName:       name,
		ExpertiseLevel: domain.ExpertiseSenior,
		Technologies:   []string{"Go", "PostgreSQL"},
		CreatedAt:      base,
	}
	require.NoError(t, s.Projects().CreateRole(ctx, r))

	role, err := s.Projects().GetRoleByID(ctx, r.ID)
	require.NoError(t, err)
	return role
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := SeedUser(t, s, "alice@example.com")

	got, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.True(t, base.Equal(got.CreatedAt))

	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)

	dup := u
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testRefreshTokens(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := SeedUser(t, s, "bob@example.com")
	repo := s.RefreshTokens()

	live := domain.RefreshToken{ID: idx.New().String(), UserID: u.ID, TokenHash: "live", ExpiresAt: base.Add(time.Hour), CreatedAt: base}
	dead := domain.RefreshToken{ID: idx.New().String(), UserID: u.ID, TokenHash: "dead", ExpiresAt: base.Add(-time.Hour), CreatedAt: base}
	other := domain.RefreshToken{ID: idx.New().String(), UserID: u.ID, TokenHash: "other", ExpiresAt: base.Add(time.Hour), CreatedAt: base}
	for _, tok := range []domain.RefreshToken{live, dead, other} {
		require.NoError(t, repo.CreateRefreshToken(ctx, tok))
	}

	got, err := repo.GetRefreshTokenByHash(ctx, "live")
	require.NoError(t, err)
	require.Equal(t, live.ID, got.ID)
	require.True(t, live.ExpiresAt.Equal(got.ExpiresAt))

	n, err := repo.DeleteExpiredRefreshTokens(ctx, base)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	deleted, err := repo.DeleteRefreshToken(ctx, "live")
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = repo.DeleteRefreshToken(ctx, "live")
	require.NoError(t, err)
	require.False(t, deleted)

	n, err = repo.DeleteUserRefreshTokens(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = repo.GetRefreshTokenByHash(ctx, "other")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testProjects(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := SeedUser(t, s, "owner@example.com")
	role := SeedRole(t, s, owner, "Backend Engineer")

	require.Equal(t, owner.ID, role.OwnerID)
	require.Equal(t, owner.Email, role.OwnerEmail)
	require.Equal(t, domain.ExpertiseSenior, role.ExpertiseLevel)
	require.Equal(t, []string{"Go", "PostgreSQL"}, role.Technologies)

	roles, err := s.Projects().ListRolesByProject(ctx, role.ProjectID)
	require.NoError(t, err)
	require.Len(t, roles, 1)

	_, err = s.Projects().GetRoleByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testInvitations(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := SeedUser(t, s, "owner@example.com")
	recipient := SeedUser(t, s, "dev@example.com")
	role := SeedRole(t, s, owner, "Frontend")
	other := SeedRole(t, s, owner, "Design")
	repo := s.Invitations()

	newInv := func(roleID string, at time.Time) domain.Invitation {
		return domain.Invitation{
			ID:            idx.New().String(),
			ProjectRoleID: roleID,
			SenderID:      owner.ID,
			RecipientID:   recipient.ID,
			Status:        domain.InvitationInvited,
			SentAt:        at,
		}
	}

	first := newInv(role.ID, base)
	require.NoError(t, repo.CreateInvitation(ctx, first))

	open, err := repo.HasOpenInvitation(ctx, recipient.ID, role.ID)
	require.NoError(t, err)
	require.True(t, open)

	// Partial unique index rejects a second open invitation for the pair
	require.ErrorIs(t, repo.CreateInvitation(ctx, newInv(role.ID, base.Add(time.Minute))), store.ErrAlreadyExists)

	got, err := repo.GetInvitationByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, owner.Email, got.SenderEmail)
	require.Equal(t, recipient.Email, got.RecipientEmail)
	require.Nil(t, got.RespondedAt)

	at := base.Add(time.Hour)
	require.NoError(t, repo.TransitionInvitation(ctx, first.ID, domain.InvitationDeclined, at))
	require.ErrorIs(t, repo.TransitionInvitation(ctx, first.ID, domain.InvitationAccepted, at), store.ErrConflict)

	got, err = repo.GetInvitationByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationDeclined, got.Status)
	require.NotNil(t, got.RespondedAt)
	require.True(t, at.Equal(*got.RespondedAt))

	// Once terminal, the pair may be invited again
	second := newInv(role.ID, base.Add(2*time.Hour))
	require.NoError(t, repo.CreateInvitation(ctx, second))
	third := newInv(other.ID, base.Add(3*time.Hour))
	require.NoError(t, repo.CreateInvitation(ctx, third))

	received, err := repo.ListByRecipient(ctx, recipient.ID)
	require.NoError(t, err)
	require.Equal(t, []string{third.ID, second.ID, first.ID}, invitationIDs(received))

	sent, err := repo.ListBySender(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, sent, 3)

	none, err := repo.ListBySender(ctx, recipient.ID)
	require.NoError(t, err)
	require.Empty(t, none)
}

func testApplications(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := SeedUser(t, s, "owner@example.com")
	applicant := SeedUser(t, s, "applicant@example.com")
	role := SeedRole(t, s, owner, "Data")
	repo := s.Applications()

	app := domain.RoleApplication{
		ID:            idx.New().String(),
		UserID:        applicant.ID,
		ProjectRoleID: role.ID,
		Status:        domain.ApplicationPending,
		AppliedAt:     base,
	}
	require.NoError(t, repo.CreateApplication(ctx, app))

	dup := app
	dup.ID = idx.New().String()
	require.ErrorIs(t, repo.CreateApplication(ctx, dup), store.ErrAlreadyExists)

	applied, err := repo.HasApplied(ctx, applicant.ID, role.ID)
	require.NoError(t, err)
	require.True(t, applied)

	got, err := repo.GetApplicationByID(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, owner.Email, got.OwnerEmail)
	require.Equal(t, applicant.Email, got.UserEmail)
	require.Nil(t, got.UpdatedAt)

	require.NoError(t, repo.UpdateApplicationStatus(ctx, app.ID, domain.ApplicationRejected, base.Add(time.Hour)))
	require.ErrorIs(t, repo.UpdateApplicationStatus(ctx, idx.New().String(), domain.ApplicationRejected, base), store.ErrNotFound)

	byRole, err := repo.ListByRole(ctx, role.ID)
	require.NoError(t, err)
	require.Len(t, byRole, 1)
	require.Equal(t, domain.ApplicationRejected, byRole[0].Status)
	require.NotNil(t, byRole[0].UpdatedAt)

	byUser, err := repo.ListByUser(ctx, applicant.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
}

func testTeamMembers(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := SeedUser(t, s, "owner@example.com")
	member := SeedUser(t, s, "member@example.com")
	role := SeedRole(t, s, owner, "QA")
	repo := s.TeamMembers()

	m := domain.TeamMember{
		ID:            idx.New().String(),
		ProjectID:     role.ProjectID,
		ProjectRoleID: role.ID,
		UserID:        member.ID,
		JoinedAt:      base,
		JoinedVia:     domain.JoinedViaApplication,
	}
	added, err := repo.AddTeamMember(ctx, m)
	require.NoError(t, err)
	require.True(t, added)

	m.ID = idx.New().String()
	added, err = repo.AddTeamMember(ctx, m)
	require.NoError(t, err)
	require.False(t, added)

	team, err := repo.ListByProject(ctx, role.ProjectID)
	require.NoError(t, err)
	require.Len(t, team, 1)
	require.Equal(t, "QA", team[0].RoleName)
	require.Equal(t, member.Email, team[0].UserEmail)

	// Removal is scoped to how the member joined
	removed, err := repo.RemoveTeamMember(ctx, role.ID, member.ID, domain.JoinedViaInvitation)
	require.NoError(t, err)
	require.False(t, removed)
	mine, err := repo.ListByUser(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	// Re-tagged memberships follow the new source
	matched, err := repo.SetJoinedVia(ctx, role.ID, member.ID, domain.JoinedViaInvitation)
	require.NoError(t, err)
	require.True(t, matched)
	removed, err = repo.RemoveTeamMember(ctx, role.ID, member.ID, domain.JoinedViaApplication)
	require.NoError(t, err)
	require.False(t, removed)

	removed, err = repo.RemoveTeamMember(ctx, role.ID, member.ID, domain.JoinedViaInvitation)
	require.NoError(t, err)
	require.True(t, removed)
	mine, err = repo.ListByUser(ctx, member.ID)
	require.NoError(t, err)
	require.Empty(t, mine)

	matched, err = repo.SetJoinedVia(ctx, role.ID, member.ID, domain.JoinedViaApplication)
	require.NoError(t, err)
	require.False(t, matched)
}

func testTransactions(t *testing.T, s store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, domain.User{
			ID: idx.New().String(), Email: "rollback@example.com", PasswordHash: "x", CreatedAt: base,
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByEmail(ctx, "rollback@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		require.Error(t, tx.WithTx(ctx, func(store.Tx) error { return nil }), "nested transactions are refused")
		return tx.Users().CreateUser(ctx, domain.User{
			ID: idx.New().String(), Email: "commit@example.com", PasswordHash: "x", CreatedAt: base,
		})
	}))

	_, err = s.Users().GetUserByEmail(ctx, "commit@example.com")
	require.NoError(t, err)
}

func invitationIDs(in []domain.Invitation) []string {
	out := make([]string, 0, len(in))
	for _, inv := range in {
		out = append(out, inv.ID)
	}
	return out
}
