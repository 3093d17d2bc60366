package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

// loadProject assembles the complete aggregate: project header, addresses,
// collaborators, documents, and the room → category → item tree, then
// recomputes every derived total. This is the snapshot every mutating
// endpoint returns.
func loadProject(ctx context.Context, q querier, accountID, projectID string) (*domain.Project, error) {
	const projectQ = `
SELECT id, code, name, type, size, status, start_date, scope, created_at, updated_at
FROM projects
WHERE account_id = $1 AND id = $2 AND deleted_at IS NULL;
`
	var p domain.Project
	var startDate sql.NullTime
	var scope sql.NullString
	err := q.QueryRowContext(ctx, projectQ, accountID, projectID).Scan(
		&p.ID, &p.Code, &p.Name, &p.Type, &p.Size, &p.Status,
		&startDate, &scope, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.StartDate = startDate.Time
	p.Scope = scope.String

	if p.Addresses, err = loadAddresses(ctx, q, projectID); err != nil {
		return nil, err
	}
	if p.Collaborators, err = loadCollaborators(ctx, q, projectID); err != nil {
		return nil, err
	}
	if p.Documents, err = loadDocuments(ctx, q, projectID); err != nil {
		return nil, err
	}
	if p.Specifications, err = loadSpecifications(ctx, q, projectID); err != nil {
		return nil, err
	}

	p.Recompute()
	return &p, nil
}

func loadAddresses(ctx context.Context, q querier, projectID string) ([]domain.Address, error) {
	const addrQ = `
SELECT id, type, line1, line2, city, state, zip, country
FROM project_addresses
WHERE project_id = $1
ORDER BY type;
`
	rows, err := q.QueryContext(ctx, addrQ, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Address, 0, 3)
	for rows.Next() {
		var a domain.Address
		var line2, country sql.NullString
		if err := rows.Scan(&a.ID, &a.Type, &a.Line1, &line2, &a.City, &a.State, &a.Zip, &country); err != nil {
			return nil, err
		}
		a.Line2 = line2.String
		a.Country = country.String
		out = append(out, a)
	}
	return out, rows.Err()
}

func loadCollaborators(ctx context.Context, q querier, projectID string) ([]domain.Collaborator, error) {
	const colQ = `
SELECT id, role, name, email, invite_status, invited_at, reminded_at
FROM project_collaborators
WHERE project_id = $1
ORDER BY role;
`
	rows, err := q.QueryContext(ctx, colQ, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Collaborator, 0, 9)
	for rows.Next() {
		var c domain.Collaborator
		var email sql.NullString
		var invitedAt, remindedAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.Role, &c.Name, &email, &c.Invite, &invitedAt, &remindedAt); err != nil {
			return nil, err
		}
		c.Email = email.String
		if invitedAt.Valid {
			t := invitedAt.Time
			c.InvitedAt = &t
		}
		if remindedAt.Valid {
			t := remindedAt.Time
			c.RemindedAt = &t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func loadDocuments(ctx context.Context, q querier, projectID string) ([]domain.Document, error) {
	const docQ = `
SELECT id, file_name, file_type, size, url, created_at
FROM project_documents
WHERE project_id = $1
ORDER BY created_at;
`
	rows, err := q.QueryContext(ctx, docQ, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Document, 0, 8)
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.FileName, &d.FileType, &d.Size, &d.URL, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// loadSpecifications loads rooms, then their categories and items, and
// stitches the tree together in memory.
func loadSpecifications(ctx context.Context, q querier, projectID string) ([]domain.RoomSpecification, error) {
	const specQ = `
SELECT id, room, date, created_at, updated_at
FROM specifications
WHERE project_id = $1
ORDER BY created_at;
`
	rows, err := q.QueryContext(ctx, specQ, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specs := make([]domain.RoomSpecification, 0, 8)
	specIdx := make(map[string]int)
	for rows.Next() {
		var s domain.RoomSpecification
		var date sql.NullTime
		if err := rows.Scan(&s.ID, &s.Room, &date, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.ProjectID = projectID
		s.Date = date.Time
		s.Categories = []domain.Category{}
		specIdx[s.ID] = len(specs)
		specs = append(specs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return specs, nil
	}

	const catQ = `
SELECT c.id, c.specification_id, c.type
FROM specification_categories c
JOIN specifications s ON s.id = c.specification_id
WHERE s.project_id = $1
ORDER BY c.created_at;
`
	catRows, err := q.QueryContext(ctx, catQ, projectID)
	if err != nil {
		return nil, err
	}
	defer catRows.Close()

	catIdx := make(map[string][2]int) // category id → (spec index, category index)
	for catRows.Next() {
		var c domain.Category
		if err := catRows.Scan(&c.ID, &c.SpecificationID, &c.Type); err != nil {
			return nil, err
		}
		c.Items = []domain.Item{}
		si, ok := specIdx[c.SpecificationID]
		if !ok {
			continue
		}
		catIdx[c.ID] = [2]int{si, len(specs[si].Categories)}
		specs[si].Categories = append(specs[si].Categories, c)
	}
	if err := catRows.Err(); err != nil {
		return nil, err
	}

	const itemQ = `
SELECT i.id, i.category_id, i.item, i.item2, i.qty, i.cost, i.currency,
       i.manufacturer, i.model, i.um, i.description, i.dimensions, i.finish,
       i.comments, i.provided, i.phase, i.created_at, i.updated_at
FROM specification_items i
JOIN specification_categories c ON c.id = i.category_id
JOIN specifications s ON s.id = c.specification_id
WHERE s.project_id = $1
ORDER BY i.created_at;
`
	itemRows, err := q.QueryContext(ctx, itemQ, projectID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it domain.Item
		var item2, manufacturer, model, um, description, dimensions, finish, comments sql.NullString
		if err := itemRows.Scan(&it.ID, &it.CategoryID, &it.Item, &item2, &it.Qty, &it.Cost,
			&it.Currency, &manufacturer, &model, &um, &description, &dimensions,
			&finish, &comments, &it.Provided, &it.Phase, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		it.OtherName = item2.String
		it.Manufacturer = manufacturer.String
		it.Model = model.String
		it.UnitOfMeasure = um.String
		it.Description = description.String
		it.Dimensions = dimensions.String
		it.Finish = finish.String
		it.Comments = comments.String

		pos, ok := catIdx[it.CategoryID]
		if !ok {
			continue
		}
		cat := &specs[pos[0]].Categories[pos[1]]
		cat.Items = append(cat.Items, it)
	}
	return specs, itemRows.Err()
}
