package domain

import "time"

type InvitationStatus string

const (
	InvitationInvited  InvitationStatus = "INVITED"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationDeclined InvitationStatus = "DECLINED"
	InvitationRevoked  InvitationStatus = "REVOKED"

	// Reserved; no operation produces these.
	InvitationPending InvitationStatus = "PENDING"
	InvitationExpired InvitationStatus = "EXPIRED"
)

// Terminal reports whether no further transition is allowed.
func (s InvitationStatus) Terminal() bool {
	return s != InvitationInvited
}

// Invitation is an offer from a role's owner to a recipient. Emails are
// joined in on read so guard checks compare against persisted identities.
type Invitation struct {
	ID             string
	ProjectRoleID  string
	ProjectID      string
	RoleName       string
	SenderID       string
	SenderEmail    string
	RecipientID    string
	RecipientEmail string
	Status         InvitationStatus
	SentAt         time.Time
	RespondedAt    *time.Time
}
