package sqlstore

import (
	"context"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
)

type teamMembersRepo struct{ conn }

const teamSelect = `
SELECT m.id, m.project_id, m.project_role_id, r.role_name, m.user_id, u.email, m.joined_at, m.joined_via
FROM project_team_members m
JOIN project_roles r ON r.id = m.project_role_id
JOIN users u ON u.id = m.user_id`

func (r *teamMembersRepo) AddTeamMember(ctx context.Context, m domain.TeamMember) (bool, error) {
	res, err := r.exec(ctx,
		`INSERT INTO project_team_members (id, project_id, project_role_id, user_id, joined_at, joined_via)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (project_role_id, user_id) DO NOTHING`,
		m.ID, m.ProjectID, m.ProjectRoleID, m.UserID, utc(m.JoinedAt), string(m.JoinedVia),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *teamMembersRepo) RemoveTeamMember(
	ctx context.Context,
	projectRoleID, userID string,
	via domain.JoinedVia,
) (bool, error) {
	res, err := r.exec(ctx,
		`DELETE FROM project_team_members WHERE project_role_id = ? AND user_id = ? AND joined_via = ?`,
		projectRoleID, userID, string(via),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *teamMembersRepo) SetJoinedVia(
	ctx context.Context,
	projectRoleID, userID string,
	via domain.JoinedVia,
) (bool, error) {
	res, err := r.exec(ctx,
		`UPDATE project_team_members SET joined_via = ? WHERE project_role_id = ? AND user_id = ?`,
		string(via), projectRoleID, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *teamMembersRepo) ListByProject(ctx context.Context, projectID string) ([]domain.TeamMember, error) {
	rows, err := r.query(ctx, teamSelect+` WHERE m.project_id = ? ORDER BY m.joined_at, m.id`, projectID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTeamMember)
}

func (r *teamMembersRepo) ListByUser(ctx context.Context, userID string) ([]domain.TeamMember, error) {
	rows, err := r.query(ctx, teamSelect+` WHERE m.user_id = ? ORDER BY m.joined_at DESC, m.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTeamMember)
}

func scanTeamMember(row scanner) (domain.TeamMember, error) {
	var (
		m   domain.TeamMember
		via string
	)
	if err := row.Scan(&m.ID, &m.ProjectID, &m.ProjectRoleID, &m.RoleName, &m.UserID, &m.UserEmail, &m.JoinedAt, &via); err != nil {
		return domain.TeamMember{}, err
	}
	m.JoinedVia = domain.JoinedVia(via)
	m.JoinedAt = m.JoinedAt.UTC()
	return m, nil
}
