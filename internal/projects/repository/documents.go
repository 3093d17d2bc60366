package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

// AddDocument registers an uploaded file against the project. The bytes
// are already in object storage by the time this runs; registration is
// step three of the signed-upload flow.
func (r *ProjectRepository) AddDocument(ctx context.Context, accountID, projectID string, d domain.Document) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := projectExists(ctx, tx, accountID, projectID); err != nil {
		return nil, err
	}

	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}
	const q = `
INSERT INTO project_documents (id, project_id, file_name, file_type, size, url)
VALUES ($1, $2, $3, $4, $5, $6);
`
	if _, err := tx.ExecContext(ctx, q, id, projectID, d.FileName, d.FileType, d.Size, d.URL); err != nil {
		return nil, err
	}

	return commitWithProject(ctx, tx, accountID, projectID)
}

// DeleteDocument removes a document record. The object itself is left in
// storage; cleanup is an offline concern.
func (r *ProjectRepository) DeleteDocument(ctx context.Context, accountID, projectID, documentID string) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := projectExists(ctx, tx, accountID, projectID); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM project_documents WHERE id = $1 AND project_id = $2;`, documentID, projectID)
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
