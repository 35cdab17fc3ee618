package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/store"
	"github.com/aussiebroadwan/innosync/pkg/idx"
	"github.com/aussiebroadwan/innosync/pkg/slogx"
)

// ProjectService is the minimal project directory the workflow engines
// resolve roles against.
type ProjectService struct {
	Store store.Store
}

// RoleInput describes a role to open on a project.
type RoleInput struct {
	RoleName       string
	ExpertiseLevel domain.ExpertiseLevel
	Technologies   []string
}

func (s *ProjectService) CreateProject(ctx context.Context, ownerEmail, title string) (domain.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Project{}, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}

	owner, err := resolveUser(ctx, s.Store, ownerEmail)
	if err != nil {
		return domain.Project{}, err
	}

	p := domain.Project{
		ID:        idx.New().String(),
		Title:     title,
		OwnerID:   owner.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Projects().CreateProject(ctx, p); err != nil {
		return domain.Project{}, err
	}

	slogx.FromContext(ctx).Info("project created", slog.String("project_id", p.ID), slog.String("owner_id", owner.ID))
	return p, nil
}

// AddRole opens a role on a project. Only the project owner may add roles.
func (s *ProjectService) AddRole(ctx context.Context, projectID, ownerEmail string, in RoleInput) (domain.ProjectRole, error) {
	in.RoleName = strings.TrimSpace(in.RoleName)
	if in.RoleName == "" {
		return domain.ProjectRole{}, fmt.Errorf("%w: role name is required", ErrInvalidArgument)
	}
	if !in.ExpertiseLevel.Valid() {
		return domain.ProjectRole{}, fmt.Errorf("%w: unknown expertise level %q", ErrInvalidArgument, in.ExpertiseLevel)
	}

	project, err := s.project(ctx, projectID)
	if err != nil {
		return domain.ProjectRole{}, err
	}

	caller, err := resolveUser(ctx, s.Store, ownerEmail)
	if err != nil {
		return domain.ProjectRole{}, err
	}
	if project.OwnerID != caller.ID {
		return domain.ProjectRole{}, ErrNotProjectOwner
	}

	role := domain.ProjectRole{
		ID:             idx.New().String(),
		ProjectID:      project.ID,
		ProjectTitle:   project.Title,
		OwnerID:        caller.ID,
		OwnerEmail:     caller.Email,
		RoleName:       in.RoleName,
		ExpertiseLevel: in.ExpertiseLevel,
		Technologies:   in.Technologies,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Store.Projects().CreateRole(ctx, role); err != nil {
		return domain.ProjectRole{}, err
	}
	return role, nil
}

func (s *ProjectService) GetRole(ctx context.Context, roleID string) (domain.ProjectRole, error) {
	return getRole(ctx, s.Store, roleID)
}

func (s *ProjectService) ListRoles(ctx context.Context, projectID string) ([]domain.ProjectRole, error) {
	if _, err := s.project(ctx, projectID); err != nil {
		return nil, err
	}
	return s.Store.Projects().ListRolesByProject(ctx, projectID)
}

func (s *ProjectService) project(ctx context.Context, id string) (domain.Project, error) {
	p, err := s.Store.Projects().GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Project{}, ErrProjectNotFound
		}
		return domain.Project{}, err
	}
	return p, nil
}

func getRole(ctx context.Context, st store.Store, roleID string) (domain.ProjectRole, error) {
	role, err := st.Projects().GetRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ProjectRole{}, ErrProjectRoleNotFound
		}
		return domain.ProjectRole{}, err
	}
	return role, nil
}
