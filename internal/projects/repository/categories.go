package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

// CopyCategory deep-duplicates every item of a category into a category
// of targetType within the same room. The server enforces one category
// per type per room; a clash surfaces as ErrConflict.
func (r *ProjectRepository) CopyCategory(ctx context.Context, accountID, categoryID string, targetType domain.CategoryType) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	projectID, specID, err := categoryOwner(ctx, tx, accountID, categoryID)
	if err != nil {
		return nil, err
	}

	newCatID := uuid.NewString()
	const insQ = `
INSERT INTO specification_categories (id, specification_id, type)
VALUES ($1, $2, $3);
`
	if _, err := tx.ExecContext(ctx, insQ, newCatID, specID, targetType); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}

	if err := copyCategoryItems(ctx, tx, categoryID, newCatID); err != nil {
		return nil, err
	}

	return commitWithProject(ctx, tx, accountID, projectID)
}

// DeleteCategory removes a category and, via cascade, its items.
func (r *ProjectRepository) DeleteCategory(ctx context.Context, accountID, categoryID string) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	projectID, _, err := categoryOwner(ctx, tx, accountID, categoryID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM specification_categories WHERE id = $1;`, categoryID); err != nil {
		return nil, err
	}

	return commitWithProject(ctx, tx, accountID, projectID)
}

// categoryOwner resolves a category to its specification and project,
// enforcing account visibility.
func categoryOwner(ctx context.Context, q querier, accountID, categoryID string) (projectID, specID string, err error) {
	const ownerQ = `
SELECT p.id, s.id
FROM specification_categories c
JOIN specifications s ON s.id = c.specification_id
JOIN projects p ON p.id = s.project_id
WHERE c.id = $1 AND p.account_id = $2 AND p.deleted_at IS NULL;
`
	err = q.QueryRowContext(ctx, ownerQ, categoryID, accountID).Scan(&projectID, &specID)
	if err == sql.ErrNoRows {
		return "", "", domain.ErrNotFound
	}
	return projectID, specID, err
}
