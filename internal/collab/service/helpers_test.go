package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/store"
	"github.com/aussiebroadwan/innosync/internal/collab/store/drivers/sqlite"
	"github.com/aussiebroadwan/innosync/pkg/cryptox"
	"github.com/aussiebroadwan/innosync/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// clock is a settable time source shared by the services under test.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Now().UTC().Truncate(time.Second)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store    store.Store
	issuer   *jwtx.HS256Issuer
	clock    *clock
	sessions *SessionService
	auth     *AuthService
	projects *ProjectService
	invites  *InvitationService
	apps     *ApplicationService
	team     *TeamService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "collab.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	iss, err := jwtx.NewEphemeralHS256Issuer(jwtx.DefaultAccessTokenTTL)
	require.NoError(t, err)

	clk := newClock()
	sessions := &SessionService{
		Store:      st,
		Issuer:     iss,
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
		Now:        clk.Now,
	}

	return &fixture{
		store:    st,
		issuer:   iss,
		clock:    clk,
		sessions: sessions,
		auth:     &AuthService{Store: st, Hasher: cryptox.NewPasswordHasher("test-pepper"), Sessions: sessions},
		projects: &ProjectService{Store: st},
		invites:  &InvitationService{Store: st, Now: clk.Now},
		apps:     &ApplicationService{Store: st, Now: clk.Now},
		team:     &TeamService{Store: st},
	}
}

func (f *fixture) user(t *testing.T, email string) domain.User {
	t.Helper()
	ctx := context.Background()
	_, err := f.auth.Signup(ctx, email, "correct horse battery staple", email)
	require.NoError(t, err)
	u, err := f.auth.Me(ctx, email)
	require.NoError(t, err)
	return u
}

func (f *fixture) role(t *testing.T, owner domain.User, name string) domain.ProjectRole {
	t.Helper()
	ctx := context.Background()
	p, err := f.projects.CreateProject(ctx, owner.Email, "P1")
	require.NoError(t, err)
	r, err := f.projects.AddRole(ctx, p.ID, owner.Email, RoleInput{
		RoleName:       name,
		ExpertiseLevel: domain.ExpertiseMiddle,
		Technologies:   []string{"Go"},
	})
	require.NoError(t, err)
	return r
}

// staleStore answers every existence check with false, as a concurrent
// writer would see it before the other insert commits.
type staleStore struct{ store.Store }

func (s staleStore) Invitations() store.Invitations {
	return staleInvitations{s.Store.Invitations()}
}

func (s staleStore) Applications() store.Applications {
	return staleApplications{s.Store.Applications()}
}

type staleInvitations struct{ store.Invitations }

func (staleInvitations) HasOpenInvitation(context.Context, string, string) (bool, error) {
	return false, nil
}

type staleApplications struct{ store.Applications }

func (staleApplications) HasApplied(context.Context, string, string) (bool, error) {
	return false, nil
}
