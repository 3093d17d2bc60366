package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

func insertCollaborator(ctx context.Context, tx *sql.Tx, projectID string, c domain.Collaborator) error {
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}
	invite := c.Invite
	if invite == "" {
		invite = domain.InviteUnasked
	}
	const q = `
INSERT INTO project_collaborators (id, project_id, role, name, email, invite_status, invited_at, reminded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := tx.ExecContext(ctx, q, id, projectID, c.Role, c.Name, c.Email, invite,
		nullTime(c.InvitedAt), nullTime(c.RemindedAt))
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// ResendInvite stamps a collaborator's invite as reminded and returns the
// full project. The actual mail goes out through the account invite flow.
func (r *ProjectRepository) ResendInvite(ctx context.Context, accountID, projectID, collaboratorID string) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := projectExists(ctx, tx, accountID, projectID); err != nil {
		return nil, err
	}

	const q = `
UPDATE project_collaborators
SET invite_status = $3, reminded_at = now()
WHERE id = $1 AND project_id = $2;
`
	res, err := tx.ExecContext(ctx, q, collaboratorID, projectID, domain.InviteReminded)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}

	return commitWithProject(ctx, tx, accountID, projectID)
}

// SweepPendingInvites flips invites that have sat pending longer than
// maxAge to reminded. Returns how many rows were touched; used by the
// nightly sweeper.
func (r *ProjectRepository) SweepPendingInvites(ctx context.Context, maxAge string) (int64, error) {
	const q = `
UPDATE project_collaborators
SET invite_status = $1, reminded_at = now()
WHERE invite_status = $2
  AND invited_at IS NOT NULL
  AND invited_at < now() - $3::interval;
`
	res, err := r.db.ExecContext(ctx, q, domain.InviteReminded, domain.InvitePending, maxAge)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
