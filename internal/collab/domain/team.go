package domain

import "time"

type JoinedVia string

const (
	JoinedViaInvitation  JoinedVia = "INVITATION"
	JoinedViaApplication JoinedVia = "APPLICATION"
)

// TeamMember records a user holding a project role.
type TeamMember struct {
	ID            string
	ProjectID     string
	ProjectRoleID string
	RoleName      string
	UserID        string
	UserEmail     string
	JoinedAt      time.Time
	JoinedVia     JoinedVia
}
