package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/store"
)

// TeamService reads the memberships produced by accepted invitations and
// applications.
type TeamService struct {
	Store store.Store
}

func (s *TeamService) ListByProject(ctx context.Context, projectID string) ([]domain.TeamMember, error) {
	if _, err := s.Store.Projects().GetProjectByID(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return s.Store.TeamMembers().ListByProject(ctx, projectID)
}

func (s *TeamService) ListByUser(ctx context.Context, email string) ([]domain.TeamMember, error) {
	user, err := resolveUser(ctx, s.Store, email)
	if err != nil {
		return nil, err
	}
	return s.Store.TeamMembers().ListByUser(ctx, user.ID)
}
