package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

func setupRepo(t *testing.T) (*ProjectRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewProjectRepository(db)
	return repo, mock, db
}

// expectLoadKitchen mocks the full aggregate load: a project with one
// kitchen specification holding a plumbing category with two items
// (2 x 150.00 and 2 x 25.50, both USD).
func expectLoadKitchen(mock sqlmock.Sqlmock, accountID, projectID string) {
	now := time.Now()

	mock.ExpectQuery(`SELECT id, code, name, type, size, status`).
		WithArgs(accountID, projectID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "code", "name", "type", "size", "status", "start_date", "scope", "created_at", "updated_at",
		}).AddRow(projectID, "N-12345-0001", "Lakeside", "new", "md", "pre", now, "full remodel", now, now))

	mock.ExpectQuery(`FROM project_addresses`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "line1", "line2", "city", "state", "zip", "country"}))

	mock.ExpectQuery(`FROM project_collaborators`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "name", "email", "invite_status", "invited_at", "reminded_at"}))

	mock.ExpectQuery(`FROM project_documents`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "file_name", "file_type", "size", "url", "created_at"}))

	mock.ExpectQuery(`SELECT id, room, date`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room", "date", "created_at", "updated_at"}).
			AddRow("spec-1", "kitchen", now, now, now))

	mock.ExpectQuery(`SELECT c.id, c.specification_id, c.type`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "specification_id", "type"}).
			AddRow("cat-1", "spec-1", "plumbing"))

	mock.ExpectQuery(`SELECT i.id, i.category_id`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "category_id", "item", "item2", "qty", "cost", "currency",
			"manufacturer", "model", "um", "description", "dimensions", "finish",
			"comments", "provided", "phase", "created_at", "updated_at",
		}).
			AddRow("item-1", "cat-1", "Faucet", nil, 2, "150.00", "USD",
				"Kohler", "K-560", "each", nil, nil, nil, nil, "contractor", "trim", now, now).
			AddRow("item-2", "cat-1", "Supply Line", nil, 2, "25.50", "USD",
				nil, nil, "each", nil, nil, nil, nil, "contractor", "mechanical", now, now))
}

func TestProjectRepository_Get(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("recomputes totals bottom-up", func(t *testing.T) {
		expectLoadKitchen(mock, "acct-1", "proj-1")

		p, err := repo.Get(context.Background(), "acct-1", "proj-1")
		require.NoError(t, err)

		require.Len(t, p.Specifications, 1)
		require.Len(t, p.Specifications[0].Categories, 1)
		cat := p.Specifications[0].Categories[0]
		require.Len(t, cat.Items, 2)

		assert.Equal(t, "300", cat.Items[0].Total.String())
		assert.Equal(t, "51", cat.Items[1].Total.String())
		assert.Equal(t, "351", cat.Total.String())
		assert.Equal(t, "351", p.Specifications[0].Total.String())
		assert.Equal(t, "351", p.Total.String())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing project", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, code, name, type, size, status`).
			WithArgs("acct-1", "missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), "acct-1", "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_Create_RetriesCodeCollision(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	// a code collision aborts the first transaction; the retry must run
	// in a fresh one
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO projects`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO projects`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("proj-1"))
	expectLoadKitchen(mock, "acct-1", "proj-1")
	mock.ExpectCommit()

	p, err := repo.Create(context.Background(), "acct-1", CreateInput{Name: "Lakeside", Type: domain.ProjectNew})
	require.NoError(t, err)
	assert.Equal(t, "proj-1", p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_AddItem(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	item := domain.Item{
		Item:     "Faucet",
		Qty:      2,
		Currency: "USD",
		Provided: domain.ProvidedContractor,
		Phase:    domain.PhaseTrim,
	}

	t.Run("inserts and returns the reloaded project", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT p.id FROM specifications`).
			WithArgs("spec-1", "acct-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("proj-1"))
		mock.ExpectQuery(`SELECT id FROM specification_categories`).
			WithArgs("spec-1", "plumbing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cat-1"))
		mock.ExpectExec(`INSERT INTO specification_items`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectLoadKitchen(mock, "acct-1", "proj-1")
		mock.ExpectCommit()

		p, err := repo.AddItem(context.Background(), "acct-1", "spec-1", domain.CategoryPlumbing, item)
		require.NoError(t, err)
		assert.Equal(t, "351", p.Total.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back, nothing committed", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT p.id FROM specifications`).
			WithArgs("spec-1", "acct-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("proj-1"))
		mock.ExpectQuery(`SELECT id FROM specification_categories`).
			WithArgs("spec-1", "plumbing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cat-1"))
		mock.ExpectExec(`INSERT INTO specification_items`).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err := repo.AddItem(context.Background(), "acct-1", "spec-1", domain.CategoryPlumbing, item)
		assert.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown specification yields not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT p.id FROM specifications`).
			WithArgs("ghost", "acct-1").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.AddItem(context.Background(), "acct-1", "ghost", domain.CategoryPlumbing, item)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_ItemCurrencyContext(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("returns the category currency", func(t *testing.T) {
		mock.ExpectQuery(`SELECT i.currency`).
			WithArgs("spec-1", "plumbing").
			WillReturnRows(sqlmock.NewRows([]string{"currency"}).AddRow("CAD"))

		currency, err := repo.ItemCurrencyContext(context.Background(), "spec-1", domain.CategoryPlumbing)
		require.NoError(t, err)
		assert.Equal(t, "CAD", currency)
	})

	t.Run("empty category has no currency", func(t *testing.T) {
		mock.ExpectQuery(`SELECT i.currency`).
			WithArgs("spec-1", "lighting").
			WillReturnError(sql.ErrNoRows)

		currency, err := repo.ItemCurrencyContext(context.Background(), "spec-1", domain.CategoryLighting)
		require.NoError(t, err)
		assert.Empty(t, currency)
	})
}

func TestProjectRepository_Update(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("missing project yields not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE projects`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.Update(context.Background(), "acct-1", "ghost", UpdateInput{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replaces collaborators wholesale", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE projects`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM project_collaborators`).
			WithArgs("proj-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO project_collaborators`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectLoadKitchen(mock, "acct-1", "proj-1")
		mock.ExpectCommit()

		in := UpdateInput{
			Collaborators: []domain.Collaborator{
				{Role: domain.RoleArchitect, Name: "Maya Lin"},
			},
		}
		p, err := repo.Update(context.Background(), "acct-1", "proj-1", in)
		require.NoError(t, err)
		assert.Equal(t, "351", p.Total.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_SoftDelete(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("marks the row deleted", func(t *testing.T) {
		mock.ExpectExec(`UPDATE projects`).
			WithArgs("acct-1", "proj-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.SoftDelete(context.Background(), "acct-1", "proj-1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("already deleted is a no-op", func(t *testing.T) {
		mock.ExpectExec(`UPDATE projects`).
			WithArgs("acct-1", "proj-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.SoftDelete(context.Background(), "acct-1", "proj-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestProjectRepository_CopyCategory(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("deep-copies items into the target type", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT p.id, s.id`).
			WithArgs("cat-1", "acct-1").
			WillReturnRows(sqlmock.NewRows([]string{"project_id", "spec_id"}).AddRow("proj-1", "spec-1"))
		mock.ExpectExec(`INSERT INTO specification_categories`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO specification_items`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		expectLoadKitchen(mock, "acct-1", "proj-1")
		mock.ExpectCommit()

		p, err := repo.CopyCategory(context.Background(), "acct-1", "cat-1", domain.CategoryStone)
		require.NoError(t, err)
		assert.Equal(t, "351", p.Total.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("target type already present yields conflict", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT p.id, s.id`).
			WithArgs("cat-1", "acct-1").
			WillReturnRows(sqlmock.NewRows([]string{"project_id", "spec_id"}).AddRow("proj-1", "spec-1"))
		mock.ExpectExec(`INSERT INTO specification_categories`).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		_, err := repo.CopyCategory(context.Background(), "acct-1", "cat-1", domain.CategoryStone)
		assert.ErrorIs(t, err, domain.ErrConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_SweepPendingInvites(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE project_collaborators`).
		WithArgs(string(domain.InviteReminded), string(domain.InvitePending), "604800 seconds").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.SweepPendingInvites(context.Background(), "604800 seconds")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
