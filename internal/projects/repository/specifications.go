package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

// AddRoom creates a room specification under the project.
func (r *ProjectRepository) AddRoom(ctx context.Context, accountID, projectID string, room domain.Room, date time.Time) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := projectExists(ctx, tx, accountID, projectID); err != nil {
		return nil, err
	}

	const q = `
INSERT INTO specifications (id, project_id, room, date)
VALUES ($1, $2, $3, $4);
`
	if _, err := tx.ExecContext(ctx, q, uuid.NewString(), projectID, room, date); err != nil {
		return nil, err
	}

	return commitWithProject(ctx, tx, accountID, projectID)
}

// UpdateRoom edits a room specification's room value and date.
func (r *ProjectRepository) UpdateRoom(ctx context.Context, accountID, specID string, room domain.Room, date time.Time) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	projectID, err := specProject(ctx, tx, accountID, specID)
	if err != nil {
		return nil, err
	}

	const q = `
UPDATE specifications
SET room = $2, date = $3, updated_at = now()
WHERE id = $1;
`
	if _, err := tx.ExecContext(ctx, q, specID, room, date); err != nil {
		return nil, err
	}

	return commitWithProject(ctx, tx, accountID, projectID)
}

// DeleteRoom removes a room specification and, via cascade, its
// categories and items.
func (r *ProjectRepository) DeleteRoom(ctx context.Context, accountID, specID string) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	projectID, err := specProject(ctx, tx, accountID, specID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM specifications WHERE id = $1;`, specID); err != nil {
		return nil, err
	}

	return commitWithProject(ctx, tx, accountID, projectID)
}

// CopySpecification duplicates one room specification into a new room of
// the same project. Shallow depth copies category shells only; full depth
// copies the items too.
func (r *ProjectRepository) CopySpecification(ctx context.Context, accountID, specID string, targetRoom domain.Room, depth domain.CopyDepth) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	projectID, err := specProject(ctx, tx, accountID, specID)
	if err != nil {
		return nil, err
	}

	if err := copySpecTree(ctx, tx, specID, projectID, targetRoom, depth); err != nil {
		return nil, err
	}

	return commitWithProject(ctx, tx, accountID, projectID)
}

// CopyRoomsFromProject copies every room specification of the source
// project into the destination project, preserving room values.
func (r *ProjectRepository) CopyRoomsFromProject(ctx context.Context, accountID, dstProjectID, srcProjectID string, depth domain.CopyDepth) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := projectExists(ctx, tx, accountID, dstProjectID); err != nil {
		return nil, err
	}
	if err := projectExists(ctx, tx, accountID, srcProjectID); err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, room FROM specifications WHERE project_id = $1 ORDER BY created_at;`, srcProjectID)
	if err != nil {
		return nil, err
	}
	type srcSpec struct {
		id   string
		room domain.Room
	}
	var srcs []srcSpec
	for rows.Next() {
		var s srcSpec
		if err := rows.Scan(&s.id, &s.room); err != nil {
			rows.Close()
			return nil, err
		}
		srcs = append(srcs, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, s := range srcs {
		if err := copySpecTree(ctx, tx, s.id, dstProjectID, s.room, depth); err != nil {
			return nil, err
		}
	}

	return commitWithProject(ctx, tx, accountID, dstProjectID)
}

// copySpecTree clones a specification (and depending on depth, its items)
// into dstProjectID under dstRoom.
func copySpecTree(ctx context.Context, tx *sql.Tx, srcSpecID, dstProjectID string, dstRoom domain.Room, depth domain.CopyDepth) error {
	newSpecID := uuid.NewString()
	const specQ = `
INSERT INTO specifications (id, project_id, room, date)
SELECT $1, $2, $3, date FROM specifications WHERE id = $4;
`
	if _, err := tx.ExecContext(ctx, specQ, newSpecID, dstProjectID, dstRoom, srcSpecID); err != nil {
		return err
	}

	catRows, err := tx.QueryContext(ctx,
		`SELECT id, type FROM specification_categories WHERE specification_id = $1 ORDER BY created_at;`, srcSpecID)
	if err != nil {
		return err
	}
	type srcCat struct {
		id  string
		typ domain.CategoryType
	}
	var cats []srcCat
	for catRows.Next() {
		var c srcCat
		if err := catRows.Scan(&c.id, &c.typ); err != nil {
			catRows.Close()
			return err
		}
		cats = append(cats, c)
	}
	catRows.Close()
	if err := catRows.Err(); err != nil {
		return err
	}

	for _, c := range cats {
		newCatID := uuid.NewString()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO specification_categories (id, specification_id, type) VALUES ($1, $2, $3);`,
			newCatID, newSpecID, c.typ); err != nil {
			return err
		}
		if depth == domain.CopyShallow {
			continue
		}
		if err := copyCategoryItems(ctx, tx, c.id, newCatID); err != nil {
			return err
		}
	}
	return nil
}

// copyCategoryItems deep-copies every item of srcCatID into dstCatID.
func copyCategoryItems(ctx context.Context, tx *sql.Tx, srcCatID, dstCatID string) error {
	const q = `
INSERT INTO specification_items
  (id, category_id, item, item2, qty, cost, currency, manufacturer, model, um,
   description, dimensions, finish, comments, provided, phase)
SELECT gen_random_uuid(), $2, item, item2, qty, cost, currency, manufacturer, model, um,
       description, dimensions, finish, comments, provided, phase
FROM specification_items
WHERE category_id = $1;
`
	_, err := tx.ExecContext(ctx, q, srcCatID, dstCatID)
	return err
}

// projectExists verifies ownership before touching sub-resources.
func projectExists(ctx context.Context, q querier, accountID, projectID string) error {
	const existsQ = `
SELECT 1 FROM projects
WHERE account_id = $1 AND id = $2 AND deleted_at IS NULL;
`
	var one int
	err := q.QueryRowContext(ctx, existsQ, accountID, projectID).Scan(&one)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	return err
}

// specProject resolves a specification to its owning project, enforcing
// account visibility.
func specProject(ctx context.Context, q querier, accountID, specID string) (string, error) {
	const ownerQ = `
SELECT p.id
FROM specifications s
JOIN projects p ON p.id = s.project_id
WHERE s.id = $1 AND p.account_id = $2 AND p.deleted_at IS NULL;
`
	var projectID string
	err := q.QueryRowContext(ctx, ownerQ, specID, accountID).Scan(&projectID)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	return projectID, err
}

// commitWithProject reloads the aggregate inside the transaction, commits,
// and returns the authoritative snapshot.
func commitWithProject(ctx context.Context, tx *sql.Tx, accountID, projectID string) (*domain.Project, error) {
	p, err := loadProject(ctx, tx, accountID, projectID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}
