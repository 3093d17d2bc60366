package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

func insertAddress(ctx context.Context, tx *sql.Tx, projectID string, a domain.Address) error {
	id := a.ID
	if id == "" {
		id = uuid.NewString()
	}
	const q = `
INSERT INTO project_addresses (id, project_id, type, line1, line2, city, state, zip, country)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err := tx.ExecContext(ctx, q, id, projectID, a.Type, a.Line1, a.Line2, a.City, a.State, a.Zip, a.Country)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

// AddAddress attaches an address to the project. One address per type;
// a second address of the same type is a conflict.
func (r *ProjectRepository) AddAddress(ctx context.Context, accountID, projectID string, a domain.Address) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := projectExists(ctx, tx, accountID, projectID); err != nil {
		return nil, err
	}
	if err := insertAddress(ctx, tx, projectID, a); err != nil {
		return nil, err
	}

	return commitWithProject(ctx, tx, accountID, projectID)
}

// UpdateAddress replaces an address's fields.
func (r *ProjectRepository) UpdateAddress(ctx context.Context, accountID, projectID, addressID string, a domain.Address) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := projectExists(ctx, tx, accountID, projectID); err != nil {
		return nil, err
	}

	const q = `
UPDATE project_addresses
SET type = $3, line1 = $4, line2 = $5, city = $6, state = $7, zip = $8, country = $9
WHERE id = $1 AND project_id = $2;
`
	res, err := tx.ExecContext(ctx, q, addressID, projectID,
		a.Type, a.Line1, a.Line2, a.City, a.State, a.Zip, a.Country)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
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

// DeleteAddress removes an address from the project.
func (r *ProjectRepository) DeleteAddress(ctx context.Context, accountID, projectID, addressID string) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := projectExists(ctx, tx, accountID, projectID); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM project_addresses WHERE id = $1 AND project_id = $2;`, addressID, projectID)
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
