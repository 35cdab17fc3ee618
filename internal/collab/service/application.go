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

const workflowApplication = "application"

// ApplicationService drives the role application state machine:
//
//	PENDING --owner--> ACCEPTED | REJECTED
//
// A user applies to a role at most once, whatever became of the earlier
// application. Decisions are not final: the owner may decide again.
type ApplicationService struct {
	Store store.Store

	// Now defaults to time.Now in UTC.
	Now func() time.Time
}

func (s *ApplicationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Apply files an application from the caller for projectRoleID.
func (s *ApplicationService) Apply(
	ctx context.Context,
	projectRoleID, applicantEmail string,
) (app domain.RoleApplication, err error) {
	ctx, span := startSpan(ctx, "ApplicationService.Apply",
		attribute.String("project_role_id", projectRoleID))
	defer endSpan(span, &err)
	defer countRejection(workflowApplication, &err)

	if projectRoleID == "" || applicantEmail == "" {
		return domain.RoleApplication{}, ErrMissingIdentifiers
	}

	// 1. Applicant and role
	user, err := resolveUser(ctx, s.Store, applicantEmail)
	if err != nil {
		return domain.RoleApplication{}, err
	}
	role, err := getRole(ctx, s.Store, projectRoleID)
	if err != nil {
		return domain.RoleApplication{}, err
	}

	// 2. One application per user and role, any status
	applied, err := s.Store.Applications().HasApplied(ctx, user.ID, role.ID)
	if err != nil {
		return domain.RoleApplication{}, err
	}
	if applied {
		return domain.RoleApplication{}, ErrAlreadyApplied
	}

	// 3. Persist
	app = domain.RoleApplication{
		ID:            idx.New().String(),
		UserID:        user.ID,
		UserEmail:     user.Email,
		ProjectRoleID: role.ID,
		ProjectID:     role.ProjectID,
		RoleName:      role.RoleName,
		OwnerEmail:    role.OwnerEmail,
		Status:        domain.ApplicationPending,
		AppliedAt:     s.now(),
	}
	if err := s.Store.Applications().CreateApplication(ctx, app); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.RoleApplication{}, ErrAlreadyApplied
		}
		return domain.RoleApplication{}, err
	}

	metrics.ApplicationTransitionsTotal.WithLabelValues(string(app.Status)).Inc()
	slogx.FromContext(ctx).Info("application filed",
		slog.String("application_id", app.ID),
		slog.String("project_role_id", role.ID),
		slog.String("user_id", user.ID),
	)
	return app, nil
}

// Decide records the owner's decision. Accepting adds the applicant to the
// team; rejecting removes a membership an earlier acceptance created.
func (s *ApplicationService) Decide(
	ctx context.Context,
	applicationID string,
	status domain.ApplicationStatus,
	deciderEmail string,
) (app domain.RoleApplication, err error) {
	ctx, span := startSpan(ctx, "ApplicationService.Decide",
		attribute.String("application_id", applicationID),
		attribute.String("status", string(status)))
	defer endSpan(span, &err)
	defer countRejection(workflowApplication, &err)

	if status != domain.ApplicationAccepted && status != domain.ApplicationRejected {
		return domain.RoleApplication{}, ErrInvalidStatus
	}

	var membership string

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Resolve
		cur, err := tx.Applications().GetApplicationByID(ctx, applicationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}

		// 2. Owner of the target role
		role, err := getRole(ctx, tx, cur.ProjectRoleID)
		if err != nil {
			return err
		}
		if !IsOwner(role, deciderEmail) {
			return ErrNotProjectOwner
		}

		// 3. Update
		now := s.now()
		if err := tx.Applications().UpdateApplicationStatus(ctx, cur.ID, status, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}

		// 4. Membership follows the latest decision
		switch status {
		case domain.ApplicationAccepted:
			added, err := tx.TeamMembers().AddTeamMember(ctx, domain.TeamMember{
				ID:            idx.New().String(),
				ProjectID:     role.ProjectID,
				ProjectRoleID: role.ID,
				UserID:        cur.UserID,
				JoinedAt:      now,
				JoinedVia:     domain.JoinedViaApplication,
			})
			if err != nil {
				return err
			}
			if added {
				membership = "added"
			}
		case domain.ApplicationRejected:
			removed, err := tx.TeamMembers().RemoveTeamMember(ctx, role.ID, cur.UserID, domain.JoinedViaApplication)
			if err != nil {
				return err
			}
			if removed {
				membership = "removed"
			}
		}

		cur.Status = status
		cur.UpdatedAt = &now
		app = cur
		return nil
	})
	if err != nil {
		return domain.RoleApplication{}, err
	}

	metrics.ApplicationTransitionsTotal.WithLabelValues(string(status)).Inc()
	if membership != "" {
		metrics.TeamMembershipsTotal.WithLabelValues(string(domain.JoinedViaApplication), membership).Inc()
	}
	slogx.FromContext(ctx).Info("application decided",
		slog.String("application_id", app.ID),
		slog.String("status", string(status)),
	)
	return app, nil
}

// ListForRole returns a role's applications, oldest first. Only the role's
// owner may list them.
func (s *ApplicationService) ListForRole(
	ctx context.Context,
	projectRoleID, requesterEmail string,
) (apps []domain.RoleApplication, err error) {
	defer countRejection(workflowApplication, &err)

	role, err := getRole(ctx, s.Store, projectRoleID)
	if err != nil {
		return nil, err
	}
	if !IsOwner(role, requesterEmail) {
		return nil, ErrNotProjectOwner
	}
	return s.Store.Applications().ListByRole(ctx, role.ID)
}

// ListForUser returns the caller's applications, newest first.
func (s *ApplicationService) ListForUser(ctx context.Context, applicantEmail string) ([]domain.RoleApplication, error) {
	user, err := resolveUser(ctx, s.Store, applicantEmail)
	if err != nil {
		return nil, err
	}
	return s.Store.Applications().ListByUser(ctx, user.ID)
}
