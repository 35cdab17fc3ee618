package service

import "github.com/aussiebroadwan/innosync/internal/collab/domain"

// Ownership and addressing checks. Identity is the caller's email compared
// directly with the persisted reference; there is no delegation.

func IsOwner(role domain.ProjectRole, email string) bool {
	return email != "" && role.OwnerEmail == email
}

func IsRecipient(inv domain.Invitation, email string) bool {
	return email != "" && inv.RecipientEmail == email
}

func IsSender(inv domain.Invitation, email string) bool {
	return email != "" && inv.SenderEmail == email
}

func IsApplicant(app domain.RoleApplication, email string) bool {
	return email != "" && app.UserEmail == email
}
