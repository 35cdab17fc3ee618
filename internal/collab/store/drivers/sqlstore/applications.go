package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/store"
)

type applicationsRepo struct{ conn }

const applicationSelect = `
SELECT a.id, a.user_id, u.email, a.project_role_id, r.project_id, r.role_name,
       o.email, a.status, a.applied_at, a.updated_at
FROM role_applications a
JOIN users u ON u.id = a.user_id
JOIN project_roles r ON r.id = a.project_role_id
JOIN projects p ON p.id = r.project_id
JOIN users o ON o.id = p.owner_id`

func (r *applicationsRepo) CreateApplication(ctx context.Context, a domain.RoleApplication) error {
	_, err := r.exec(ctx,
		`INSERT INTO role_applications (id, user_id, project_role_id, status, applied_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.ProjectRoleID, string(a.Status), utc(a.AppliedAt),
	)
	return err
}

func (r *applicationsRepo) GetApplicationByID(ctx context.Context, id string) (domain.RoleApplication, error) {
	a, err := scanApplication(r.queryRow(ctx, applicationSelect+` WHERE a.id = ?`, id))
	if err != nil {
		return domain.RoleApplication{}, mapNotFound(err)
	}
	return a, nil
}

func (r *applicationsRepo) HasApplied(ctx context.Context, userID, projectRoleID string) (bool, error) {
	var n int
	err := r.queryRow(ctx,
		`SELECT COUNT(*) FROM role_applications WHERE user_id = ? AND project_role_id = ?`,
		userID, projectRoleID,
	).Scan(&n)
	return n > 0, err
}

func (r *applicationsRepo) UpdateApplicationStatus(
	ctx context.Context,
	id string,
	status domain.ApplicationStatus,
	at time.Time,
) error {
	res, err := r.exec(ctx,
		`UPDATE role_applications SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), utc(at), id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *applicationsRepo) ListByRole(ctx context.Context, projectRoleID string) ([]domain.RoleApplication, error) {
	rows, err := r.query(ctx, applicationSelect+` WHERE a.project_role_id = ? ORDER BY a.applied_at, a.id`, projectRoleID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanApplication)
}

func (r *applicationsRepo) ListByUser(ctx context.Context, userID string) ([]domain.RoleApplication, error) {
	rows, err := r.query(ctx, applicationSelect+` WHERE a.user_id = ? ORDER BY a.applied_at DESC, a.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanApplication)
}

func scanApplication(row scanner) (domain.RoleApplication, error) {
	var (
		a       domain.RoleApplication
		status  string
		updated sql.NullTime
	)
	err := row.Scan(
		&a.ID, &a.UserID, &a.UserEmail, &a.ProjectRoleID, &a.ProjectID, &a.RoleName,
		&a.OwnerEmail, &status, &a.AppliedAt, &updated,
	)
	if err != nil {
		return domain.RoleApplication{}, err
	}
	a.Status = domain.ApplicationStatus(status)
	a.AppliedAt = a.AppliedAt.UTC()
	a.UpdatedAt = mapNullTimePtr(updated)
	return a, nil
}
