package sqlstore

import (
	"context"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
)

type projectsRepo struct{ conn }

const roleSelect = `
SELECT r.id, r.project_id, p.title, p.owner_id, o.email,
       r.role_name, r.expertise_level, r.technologies, r.created_at
FROM project_roles r
JOIN projects p ON p.id = r.project_id
JOIN users o ON o.id = p.owner_id`

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	_, err := r.exec(ctx,
		`INSERT INTO projects (id, title, owner_id, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Title, p.OwnerID, utc(p.CreatedAt),
	)
	return err
}

func (r *projectsRepo) GetProjectByID(ctx context.Context, id string) (domain.Project, error) {
	var p domain.Project
	err := r.queryRow(ctx,
		`SELECT id, title, owner_id, created_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.OwnerID, &p.CreatedAt)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

func (r *projectsRepo) CreateRole(ctx context.Context, role domain.ProjectRole) error {
	_, err := r.exec(ctx,
		`INSERT INTO project_roles (id, project_id, role_name, expertise_level, technologies, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		role.ID, role.ProjectID, role.RoleName, string(role.ExpertiseLevel), joinTags(role.Technologies), utc(role.CreatedAt),
	)
	return err
}

func (r *projectsRepo) GetRoleByID(ctx context.Context, id string) (domain.ProjectRole, error) {
	role, err := scanRole(r.queryRow(ctx, roleSelect+` WHERE r.id = ?`, id))
	if err != nil {
		return domain.ProjectRole{}, mapNotFound(err)
	}
	return role, nil
}

func (r *projectsRepo) ListRolesByProject(ctx context.Context, projectID string) ([]domain.ProjectRole, error) {
	rows, err := r.query(ctx, roleSelect+` WHERE r.project_id = ? ORDER BY r.created_at, r.id`, projectID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanRole)
}

func scanRole(row scanner) (domain.ProjectRole, error) {
	var (
		role  domain.ProjectRole
		level string
		tags  string
	)
	err := row.Scan(
		&role.ID, &role.ProjectID, &role.ProjectTitle, &role.OwnerID, &role.OwnerEmail,
		&role.RoleName, &level, &tags, &role.CreatedAt,
	)
	if err != nil {
		return domain.ProjectRole{}, err
	}
	role.ExpertiseLevel = domain.ExpertiseLevel(level)
	role.Technologies = splitTags(tags)
	role.CreatedAt = role.CreatedAt.UTC()
	return role, nil
}
