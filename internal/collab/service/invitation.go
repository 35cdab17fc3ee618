package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/metrics"
	"github.com/aussiebroadwan/innosync/internal/collab/store"
	"github.com/aussiebroadwan/innosync/pkg/idx"
	"github.com/aussiebroadwan/innosync/pkg/slogx"
	"go.opentelemetry.io/otel/attribute"
)

const workflowInvitation = "invitation"

// InvitationService drives the invitation state machine:
//
//	INVITED --recipient--> ACCEPTED | DECLINED
//	INVITED --sender-----> REVOKED
//
// Terminal invitations never change again.
type InvitationService struct {
	Store store.Store

	// Now defaults to time.Now in UTC.
	Now func() time.Time
}

func (s *InvitationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create invites recipientID to a role on behalf of the role's owner.
func (s *InvitationService) Create(
	ctx context.Context,
	projectRoleID, recipientID, callerEmail string,
) (inv domain.Invitation, err error) {
	ctx, span := startSpan(ctx, "InvitationService.Create",
		attribute.String("project_role_id", projectRoleID))
	defer endSpan(span, &err)
	defer countRejection(workflowInvitation, &err)

	// 1. Arguments
	if projectRoleID == "" || recipientID == "" || callerEmail == "" {
		return domain.Invitation{}, ErrMissingIdentifiers
	}

	// 2. Role
	role, err := getRole(ctx, s.Store, projectRoleID)
	if err != nil {
		return domain.Invitation{}, err
	}

	// 3. Ownership
	if !IsOwner(role, callerEmail) {
		return domain.Invitation{}, ErrNotProjectOwner
	}

	// 4. One open invitation per recipient and role
	open, err := s.Store.Invitations().HasOpenInvitation(ctx, recipientID, projectRoleID)
	if err != nil {
		return domain.Invitation{}, err
	}
	if open {
		return domain.Invitation{}, ErrInvitationExists
	}

	// 5. Parties
	sender, err := resolveUser(ctx, s.Store, callerEmail)
	if err != nil {
		return domain.Invitation{}, err
	}
	recipient, err := s.Store.Users().GetUserByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrUserNotFound
		}
		return domain.Invitation{}, err
	}

	// 6. Persist; the partial unique index settles concurrent duplicates
	inv = domain.Invitation{
		ID:             idx.New().String(),
		ProjectRoleID:  role.ID,
		ProjectID:      role.ProjectID,
		RoleName:       role.RoleName,
		SenderID:       sender.ID,
		SenderEmail:    sender.Email,
		RecipientID:    recipient.ID,
		RecipientEmail: recipient.Email,
		Status:         domain.InvitationInvited,
		SentAt:         s.now(),
	}
	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Invitation{}, ErrInvitationExists
		}
		return domain.Invitation{}, err
	}

	metrics.InvitationTransitionsTotal.WithLabelValues(string(inv.Status)).Inc()
	slogx.FromContext(ctx).Info("invitation sent",
		slog.String("invitation_id", inv.ID),
		slog.String("project_role_id", role.ID),
		slog.String("recipient_id", recipient.ID),
	)
	return inv, nil
}

// Respond lets the recipient accept or decline. Accepting adds the
// recipient to the project team in the same transaction.
func (s *InvitationService) Respond(
	ctx context.Context,
	invitationID string,
	status domain.InvitationStatus,
	callerEmail string,
) (inv domain.Invitation, err error) {
	ctx, span := startSpan(ctx, "InvitationService.Respond",
		attribute.String("invitation_id", invitationID),
		attribute.String("status", string(status)))
	defer endSpan(span, &err)
	defer countRejection(workflowInvitation, &err)

	if status != domain.InvitationAccepted && status != domain.InvitationDeclined {
		return domain.Invitation{}, ErrInvalidStatus
	}

	return s.transition(ctx, invitationID, status, func(inv domain.Invitation) error {
		if !IsRecipient(inv, callerEmail) {
			return ErrNotRecipient
		}
		return nil
	})
}

// Revoke withdraws an open invitation. Only its sender may do so.
func (s *InvitationService) Revoke(ctx context.Context, invitationID, callerEmail string) (inv domain.Invitation, err error) {
	ctx, span := startSpan(ctx, "InvitationService.Revoke",
		attribute.String("invitation_id", invitationID))
	defer endSpan(span, &err)
	defer countRejection(workflowInvitation, &err)

	return s.transition(ctx, invitationID, domain.InvitationRevoked, func(inv domain.Invitation) error {
		if !IsSender(inv, callerEmail) {
			return ErrNotSender
		}
		return nil
	})
}

func (s *InvitationService) transition(
	ctx context.Context,
	invitationID string,
	status domain.InvitationStatus,
	authorize func(domain.Invitation) error,
) (domain.Invitation, error) {
	var (
		result domain.Invitation
		joined bool
	)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Resolve
		inv, err := tx.Invitations().GetInvitationByID(ctx, invitationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvitationNotFound
			}
			return err
		}

		// 2. Authorize
		if err := authorize(inv); err != nil {
			return err
		}

		// 3. Only INVITED may move
		if inv.Status.Terminal() {
			return ErrInvitationClosed
		}

		// 4. Conditional update; a concurrent responder leaves zero rows
		now := s.now()
		if err := tx.Invitations().TransitionInvitation(ctx, inv.ID, status, now); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrInvitationClosed
			}
			return err
		}
		inv.Status = status
		inv.RespondedAt = &now

		// 5. Membership
		if status == domain.InvitationAccepted {
			joined, err = tx.TeamMembers().AddTeamMember(ctx, domain.TeamMember{
				ID:            idx.New().String(),
				ProjectID:     inv.ProjectID,
				ProjectRoleID: inv.ProjectRoleID,
				UserID:        inv.RecipientID,
				JoinedAt:      now,
				JoinedVia:     domain.JoinedViaInvitation,
			})
			if err != nil {
				return err
			}
			// An application membership already exists. Accepted invitations
			// are final, so the row must outlive a later rejection.
			if !joined {
				if _, err := tx.TeamMembers().SetJoinedVia(ctx, inv.ProjectRoleID, inv.RecipientID, domain.JoinedViaInvitation); err != nil {
					return err
				}
			}
		}

		result = inv
		return nil
	})
	if err != nil {
		return domain.Invitation{}, err
	}

	metrics.InvitationTransitionsTotal.WithLabelValues(string(status)).Inc()
	if joined {
		metrics.TeamMembershipsTotal.WithLabelValues(string(domain.JoinedViaInvitation), "added").Inc()
	}
	slogx.FromContext(ctx).Info("invitation transitioned",
		slog.String("invitation_id", result.ID),
		slog.String("status", string(status)),
	)
	return result, nil
}

// ListSent returns the invitations the caller sent, newest first.
func (s *InvitationService) ListSent(ctx context.Context, callerEmail string) ([]domain.Invitation, error) {
	user, err := resolveUser(ctx, s.Store, callerEmail)
	if err != nil {
		return nil, err
	}
	return s.Store.Invitations().ListBySender(ctx, user.ID)
}

// ListReceived returns the invitations addressed to the caller, newest
// first.
func (s *InvitationService) ListReceived(ctx context.Context, callerEmail string) ([]domain.Invitation, error) {
	user, err := resolveUser(ctx, s.Store, callerEmail)
	if err != nil {
		return nil, err
	}
	return s.Store.Invitations().ListByRecipient(ctx, user.ID)
}

func countRejection(workflow string, err *error) {
	if err == nil || *err == nil || Kind(*err) == nil {
		return
	}
	metrics.WorkflowRejectionsTotal.WithLabelValues(workflow, reason(*err)).Inc()
}
