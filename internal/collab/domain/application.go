package domain

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// RoleApplication is a user's request to fill a project role.
type RoleApplication struct {
	ID            string
	UserID        string
	UserEmail     string
	ProjectRoleID string
	ProjectID     string
	RoleName      string
	OwnerEmail    string
	Status        ApplicationStatus
	AppliedAt     time.Time
	UpdatedAt     *time.Time
}
