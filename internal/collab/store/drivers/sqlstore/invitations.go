package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/store"
)

type invitationsRepo struct{ conn }

const invitationSelect = `
SELECT i.id, i.project_role_id, r.project_id, r.role_name,
       i.sender_id, s.email, i.recipient_id, rc.email,
       i.status, i.sent_at, i.responded_at
FROM invitations i
JOIN project_roles r ON r.id = i.project_role_id
JOIN users s ON s.id = i.sender_id
JOIN users rc ON rc.id = i.recipient_id`

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.exec(ctx,
		`INSERT INTO invitations (id, project_role_id, sender_id, recipient_id, status, sent_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.ProjectRoleID, inv.SenderID, inv.RecipientID, string(inv.Status), utc(inv.SentAt),
	)
	return err
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	inv, err := scanInvitation(r.queryRow(ctx, invitationSelect+` WHERE i.id = ?`, id))
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) HasOpenInvitation(ctx context.Context, recipientID, projectRoleID string) (bool, error) {
	var n int
	err := r.queryRow(ctx,
		`SELECT COUNT(*) FROM invitations WHERE recipient_id = ? AND project_role_id = ? AND status = 'INVITED'`,
		recipientID, projectRoleID,
	).Scan(&n)
	return n > 0, err
}

func (r *invitationsRepo) TransitionInvitation(
	ctx context.Context,
	id string,
	status domain.InvitationStatus,
	at time.Time,
) error {
	res, err := r.exec(ctx,
		`UPDATE invitations SET status = ?, responded_at = ? WHERE id = ? AND status = 'INVITED'`,
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
		return store.ErrConflict
	}
	return nil
}

func (r *invitationsRepo) ListBySender(ctx context.Context, senderID string) ([]domain.Invitation, error) {
	rows, err := r.query(ctx, invitationSelect+` WHERE i.sender_id = ? ORDER BY i.sent_at DESC, i.id DESC`, senderID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanInvitation)
}

func (r *invitationsRepo) ListByRecipient(ctx context.Context, recipientID string) ([]domain.Invitation, error) {
	rows, err := r.query(ctx, invitationSelect+` WHERE i.recipient_id = ? ORDER BY i.sent_at DESC, i.id DESC`, recipientID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanInvitation)
}

func scanInvitation(row scanner) (domain.Invitation, error) {
	var (
		inv       domain.Invitation
		status    string
		responded sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &inv.ProjectRoleID, &inv.ProjectID, &inv.RoleName,
		&inv.SenderID, &inv.SenderEmail, &inv.RecipientID, &inv.RecipientEmail,
		&status, &inv.SentAt, &responded,
	)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.Status = domain.InvitationStatus(status)
	inv.SentAt = inv.SentAt.UTC()
	inv.RespondedAt = mapNullTimePtr(responded)
	return inv, nil
}
