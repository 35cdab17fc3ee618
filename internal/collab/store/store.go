package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict is returned when a conditional update matched no row
	// because another writer changed it first.
	ErrConflict = errors.New("store: conflicting update")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories so a transaction-scoped Store
// offers exactly the same surface as the root one.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	Projects() Projects
	Invitations() Invitations
	Applications() Applications
	TeamMembers() TeamMembers

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Inside fn only
	// the tx argument may be used; touching the outer Store can deadlock a
	// single-connection driver.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists on a taken email.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

type RefreshTokens interface {
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash looks a token up by its fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// DeleteRefreshToken removes a token by fingerprint and reports whether
	// a row was actually deleted.
	DeleteRefreshToken(ctx context.Context, hash string) (bool, error)

	// DeleteUserRefreshTokens removes every token of a user.
	DeleteUserRefreshTokens(ctx context.Context, userID string) (int64, error)

	// DeleteExpiredRefreshTokens is housekeeping.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type Projects interface {
	CreateProject(ctx context.Context, p domain.Project) error
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)

	CreateRole(ctx context.Context, r domain.ProjectRole) error

	// GetRoleByID returns the role with its project's owner joined in.
	GetRoleByID(ctx context.Context, id string) (domain.ProjectRole, error)
	ListRolesByProject(ctx context.Context, projectID string) ([]domain.ProjectRole, error)
}

type Invitations interface {
	// CreateInvitation returns ErrAlreadyExists when an INVITED row already
	// exists for the same recipient and role.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// HasOpenInvitation reports whether an INVITED row exists for the pair.
	HasOpenInvitation(ctx context.Context, recipientID, projectRoleID string) (bool, error)

	// TransitionInvitation moves an INVITED row to status. Returns
	// ErrConflict when the row is no longer INVITED.
	TransitionInvitation(ctx context.Context, id string, status domain.InvitationStatus, at time.Time) error

	// ListBySender returns invitations sent by a user, newest first.
	ListBySender(ctx context.Context, senderID string) ([]domain.Invitation, error)

	// ListByRecipient returns invitations received by a user, newest first.
	ListByRecipient(ctx context.Context, recipientID string) ([]domain.Invitation, error)
}

type Applications interface {
	// CreateApplication returns ErrAlreadyExists when the user already
	// applied to the role, whatever that application's status.
	CreateApplication(ctx context.Context, a domain.RoleApplication) error

	GetApplicationByID(ctx context.Context, id string) (domain.RoleApplication, error)
	HasApplied(ctx context.Context, userID, projectRoleID string) (bool, error)
	UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus, at time.Time) error

	// ListByRole returns applications for a role, oldest first.
	ListByRole(ctx context.Context, projectRoleID string) ([]domain.RoleApplication, error)

	// ListByUser returns a user's applications, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.RoleApplication, error)
}

type TeamMembers interface {
	// AddTeamMember inserts a membership and reports whether a row was
	// added. An existing membership for the same role and user is kept.
	AddTeamMember(ctx context.Context, m domain.TeamMember) (bool, error)

	// RemoveTeamMember deletes the membership created through via and
	// reports whether a row was deleted.
	RemoveTeamMember(ctx context.Context, projectRoleID, userID string, via domain.JoinedVia) (bool, error)

	// SetJoinedVia rewrites how an existing membership was granted. It
	// reports whether a row matched.
	SetJoinedVia(ctx context.Context, projectRoleID, userID string, via domain.JoinedVia) (bool, error)

	ListByProject(ctx context.Context, projectID string) ([]domain.TeamMember, error)
	ListByUser(ctx context.Context, userID string) ([]domain.TeamMember, error)
}
