package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

// ProjectRepository provides persistence for the project aggregate.
// Every mutating method runs in a single transaction and returns the
// freshly reloaded full project, so a failed call leaves stored state
// untouched and a successful call hands back an authoritative snapshot.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx so the aggregate
// loader can run inside or outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// isUniqueViolation reports a postgres 23505 error.
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateInput bundles the fields accepted at project creation, including
// the initial collaborators and addresses the create form collects.
type CreateInput struct {
	Name          string
	Type          domain.ProjectType
	Size          domain.ProjectSize
	Status        domain.ProjectStatus
	StartDate     sql.NullTime
	Scope         string
	Collaborators []domain.Collaborator
	Addresses     []domain.Address
}

// errCodeCollision signals the generated public code was already taken.
var errCodeCollision = errors.New("project code already taken")

// Create inserts a new project for the given account. A collision on
// the generated public code retries the whole transaction with a fresh
// code; postgres aborts a transaction on the first failed statement,
// so the retry cannot reuse it.
func (r *ProjectRepository) Create(ctx context.Context, accountID string, in CreateInput) (*domain.Project, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account id required")
	}

	for i := 0; i < 5; i++ {
		p, err := r.createOnce(ctx, accountID, in)
		if errors.Is(err, errCodeCollision) {
			continue
		}
		return p, err
	}
	return nil, fmt.Errorf("failed to generate unique project code")
}

func (r *ProjectRepository) createOnce(ctx context.Context, accountID string, in CreateInput) (*domain.Project, error) {
	code, err := domain.NewProjectCode(in.Type)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const q = `
INSERT INTO projects (id, account_id, code, name, type, size, status, start_date, scope)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id;
`
	var projectID string
	err = tx.QueryRowContext(ctx, q,
		uuid.NewString(), accountID, code, in.Name, in.Type, in.Size, in.Status, in.StartDate, in.Scope,
	).Scan(&projectID)
	if isUniqueViolation(err) {
		return nil, errCodeCollision
	}
	if err != nil {
		return nil, err
	}

	for _, col := range in.Collaborators {
		if err := insertCollaborator(ctx, tx, projectID, col); err != nil {
			return nil, err
		}
	}
	for _, addr := range in.Addresses {
		if err := insertAddress(ctx, tx, projectID, addr); err != nil {
			return nil, err
		}
	}

	p, err := loadProject(ctx, tx, accountID, projectID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the full project aggregate.
func (r *ProjectRepository) Get(ctx context.Context, accountID, projectID string) (*domain.Project, error) {
	return loadProject(ctx, r.db, accountID, projectID)
}

// List returns all non-deleted projects for the account, newest first.
// List rows carry the project header only; detail views fetch by id.
func (r *ProjectRepository) List(ctx context.Context, accountID string) ([]domain.Project, error) {
	const q = `
SELECT id, code, name, type, size, status, start_date, scope, created_at, updated_at
FROM projects
WHERE account_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		var scope sql.NullString
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Type, &p.Size, &p.Status,
			&p.StartDate, &scope, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Scope = scope.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateInput carries the piecemeal project update the detail view sends.
// Nil slices leave the corresponding collection alone; non-nil slices
// replace it wholesale, which is how collaborators are edited.
type UpdateInput struct {
	Name          *string
	Size          *domain.ProjectSize
	Status        *domain.ProjectStatus
	StartDate     sql.NullTime
	Scope         *string
	Collaborators []domain.Collaborator
	Addresses     []domain.Address
}

// Update applies the given fields and returns the full updated project.
func (r *ProjectRepository) Update(ctx context.Context, accountID, projectID string, in UpdateInput) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const q = `
UPDATE projects
SET name = COALESCE($3, name),
    size = COALESCE($4, size),
    status = COALESCE($5, status),
    start_date = COALESCE($6, start_date),
    scope = COALESCE($7, scope),
    updated_at = now()
WHERE account_id = $1 AND id = $2 AND deleted_at IS NULL;
`
	res, err := tx.ExecContext(ctx, q, accountID, projectID,
		in.Name, in.Size, in.Status, in.StartDate, in.Scope)
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

	if in.Collaborators != nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM project_collaborators WHERE project_id = $1;`, projectID); err != nil {
			return nil, err
		}
		for _, col := range in.Collaborators {
			if err := insertCollaborator(ctx, tx, projectID, col); err != nil {
				return nil, err
			}
		}
	}

	if in.Addresses != nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM project_addresses WHERE project_id = $1;`, projectID); err != nil {
			return nil, err
		}
		for _, addr := range in.Addresses {
			if err := insertAddress(ctx, tx, projectID, addr); err != nil {
				return nil, err
			}
		}
	}

	p, err := loadProject(ctx, tx, accountID, projectID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// SoftDelete marks a project as deleted.
func (r *ProjectRepository) SoftDelete(ctx context.Context, accountID, projectID string) (bool, error) {
	const q = `
UPDATE projects
SET deleted_at = now(), updated_at = now()
WHERE account_id = $1 AND id = $2 AND deleted_at IS NULL;
`
	result, err := r.db.ExecContext(ctx, q, accountID, projectID)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// Copy deep-duplicates a whole project (rooms, categories, items,
// addresses, collaborators) under a fresh code and returns the copy.
func (r *ProjectRepository) Copy(ctx context.Context, accountID, projectID string) (*domain.Project, error) {
	src, err := loadProject(ctx, r.db, accountID, projectID)
	if err != nil {
		return nil, err
	}

	in := CreateInput{
		Name:          src.Name + " (copy)",
		Type:          src.Type,
		Size:          src.Size,
		Status:        src.Status,
		StartDate:     sql.NullTime{Time: src.StartDate, Valid: !src.StartDate.IsZero()},
		Scope:         src.Scope,
		Collaborators: src.Collaborators,
		Addresses:     src.Addresses,
	}
	dst, err := r.Create(ctx, accountID, in)
	if err != nil {
		return nil, err
	}

	return r.CopyRoomsFromProject(ctx, accountID, dst.ID, projectID, domain.CopyFull)
}
