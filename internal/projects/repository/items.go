package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

// AddItem inserts an item under the specification, creating the category
// of the requested type on first use. Returns the full updated project.
func (r *ProjectRepository) AddItem(ctx context.Context, accountID, specID string, categoryType domain.CategoryType, item domain.Item) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	projectID, err := specProject(ctx, tx, accountID, specID)
	if err != nil {
		return nil, err
	}

	categoryID, err := ensureCategory(ctx, tx, specID, categoryType)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO specification_items
  (id, category_id, item, item2, qty, cost, currency, manufacturer, model, um,
   description, dimensions, finish, comments, provided, phase)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
`
	if _, err := tx.ExecContext(ctx, q,
		uuid.NewString(), categoryID, item.Item, item.OtherName, item.Qty, item.Cost,
		item.Currency, item.Manufacturer, item.Model, item.UnitOfMeasure,
		item.Description, item.Dimensions, item.Finish, item.Comments,
		item.Provided, item.Phase,
	); err != nil {
		return nil, err
	}

	return commitWithProject(ctx, tx, accountID, projectID)
}

// UpdateItem fully replaces an item's editable fields. The total is never
// written; it is derived on load.
func (r *ProjectRepository) UpdateItem(ctx context.Context, accountID, itemID string, item domain.Item) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	projectID, err := itemProject(ctx, tx, accountID, itemID)
	if err != nil {
		return nil, err
	}

	const q = `
UPDATE specification_items
SET item = $2, item2 = $3, qty = $4, cost = $5, currency = $6,
    manufacturer = $7, model = $8, um = $9, description = $10,
    dimensions = $11, finish = $12, comments = $13, provided = $14,
    phase = $15, updated_at = now()
WHERE id = $1;
`
	if _, err := tx.ExecContext(ctx, q,
		itemID, item.Item, item.OtherName, item.Qty, item.Cost, item.Currency,
		item.Manufacturer, item.Model, item.UnitOfMeasure, item.Description,
		item.Dimensions, item.Finish, item.Comments, item.Provided, item.Phase,
	); err != nil {
		return nil, err
	}

	return commitWithProject(ctx, tx, accountID, projectID)
}

// DeleteItem removes an item. Deletion is authoritative once committed.
func (r *ProjectRepository) DeleteItem(ctx context.Context, accountID, itemID string) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	projectID, err := itemProject(ctx, tx, accountID, itemID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM specification_items WHERE id = $1;`, itemID); err != nil {
		return nil, err
	}

	return commitWithProject(ctx, tx, accountID, projectID)
}

// ItemCurrencyContext returns the currency shared by the target category's
// existing items, or "" when the category is empty or absent. Used to
// enforce single-currency categories before writing.
func (r *ProjectRepository) ItemCurrencyContext(ctx context.Context, specID string, categoryType domain.CategoryType) (string, error) {
	const q = `
SELECT i.currency
FROM specification_items i
JOIN specification_categories c ON c.id = i.category_id
WHERE c.specification_id = $1 AND c.type = $2
LIMIT 1;
`
	var currency string
	err := r.db.QueryRowContext(ctx, q, specID, categoryType).Scan(&currency)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return currency, err
}

// ItemCategoryCurrency returns the currency shared by the sibling items
// of the given item's category, ignoring the item itself. "" means the
// item is alone in its category.
func (r *ProjectRepository) ItemCategoryCurrency(ctx context.Context, itemID string) (string, error) {
	const q = `
SELECT sibling.currency
FROM specification_items target
JOIN specification_items sibling
  ON sibling.category_id = target.category_id AND sibling.id <> target.id
WHERE target.id = $1
LIMIT 1;
`
	var currency string
	err := r.db.QueryRowContext(ctx, q, itemID).Scan(&currency)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return currency, err
}

// ensureCategory returns the category id for (spec, type), creating the
// row on first use. Categories exist only because items do.
func ensureCategory(ctx context.Context, tx *sql.Tx, specID string, categoryType domain.CategoryType) (string, error) {
	const selQ = `
SELECT id FROM specification_categories
WHERE specification_id = $1 AND type = $2;
`
	var id string
	err := tx.QueryRowContext(ctx, selQ, specID, categoryType).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	id = uuid.NewString()
	const insQ = `
INSERT INTO specification_categories (id, specification_id, type)
VALUES ($1, $2, $3);
`
	if _, err := tx.ExecContext(ctx, insQ, id, specID, categoryType); err != nil {
		if isUniqueViolation(err) {
			return "", domain.ErrConflict
		}
		return "", err
	}
	return id, nil
}

// itemProject resolves an item to its owning project, enforcing account
// visibility.
func itemProject(ctx context.Context, q querier, accountID, itemID string) (string, error) {
	const ownerQ = `
SELECT p.id
FROM specification_items i
JOIN specification_categories c ON c.id = i.category_id
JOIN specifications s ON s.id = c.specification_id
JOIN projects p ON p.id = s.project_id
WHERE i.id = $1 AND p.account_id = $2 AND p.deleted_at IS NULL;
`
	var projectID string
	err := q.QueryRowContext(ctx, ownerQ, itemID, accountID).Scan(&projectID)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	return projectID, err
}
