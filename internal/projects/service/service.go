package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
	"github.com/swoop-build/swoop-backend/internal/projects/repository"
)

// SnapshotCache keeps the latest authoritative project snapshot hot.
// Entries are scoped by account: a hit is only valid for the account
// that wrote it. Cache trouble must never fail a request, so
// implementations log and swallow their own errors; the interface
// returns nothing.
type SnapshotCache interface {
	Get(ctx context.Context, accountID, projectID string) (*domain.Project, bool)
	Set(ctx context.Context, accountID string, p *domain.Project)
	Delete(ctx context.Context, accountID, projectID string)
}

// noopCache is used when redis is not configured.
type noopCache struct{}

func (noopCache) Get(context.Context, string, string) (*domain.Project, bool) { return nil, false }
func (noopCache) Set(context.Context, string, *domain.Project)                {}
func (noopCache) Delete(context.Context, string, string)                      {}

// ProjectService validates inputs, delegates to the repository, and keeps
// the snapshot cache in step with every authoritative response.
type ProjectService struct {
	repo  *repository.ProjectRepository
	cache SnapshotCache
	log   *logrus.Logger
}

// NewProjectService creates a new project service. cache may be nil.
func NewProjectService(repo *repository.ProjectRepository, cache SnapshotCache, log *logrus.Logger) *ProjectService {
	if cache == nil {
		cache = noopCache{}
	}
	return &ProjectService{repo: repo, cache: cache, log: log}
}

// refresh stores the new snapshot after a successful mutation.
func (s *ProjectService) refresh(ctx context.Context, accountID string, p *domain.Project) *domain.Project {
	s.cache.Set(ctx, accountID, p)
	return p
}

// Create creates a project with its initial collaborators and addresses.
func (s *ProjectService) Create(ctx context.Context, accountID string, in ProjectInput) (*domain.Project, error) {
	create, err := in.toCreate()
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Create(ctx, accountID, create)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// Get returns the project, preferring the cached snapshot. The cache is
// keyed by account, so a caller from another account falls through to
// the repository's ownership check.
func (s *ProjectService) Get(ctx context.Context, accountID, projectID string) (*domain.Project, error) {
	if p, ok := s.cache.Get(ctx, accountID, projectID); ok {
		return p, nil
	}
	p, err := s.repo.Get(ctx, accountID, projectID)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// List returns project headers for the account.
func (s *ProjectService) List(ctx context.Context, accountID string) ([]domain.Project, error) {
	return s.repo.List(ctx, accountID)
}

// Update applies a piecemeal project edit.
func (s *ProjectService) Update(ctx context.Context, accountID, projectID string, in ProjectUpdateInput) (*domain.Project, error) {
	update, err := in.toUpdate()
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Update(ctx, accountID, projectID, update)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, accountID, projectID string) error {
	ok, err := s.repo.SoftDelete(ctx, accountID, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	s.cache.Delete(ctx, accountID, projectID)
	return nil
}

// Copy duplicates a project wholesale.
func (s *ProjectService) Copy(ctx context.Context, accountID, projectID string) (*domain.Project, error) {
	p, err := s.repo.Copy(ctx, accountID, projectID)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// AddRoom creates a room specification.
func (s *ProjectService) AddRoom(ctx context.Context, accountID, projectID string, room string, date time.Time) (*domain.Project, error) {
	r := domain.Room(room)
	if !r.Valid() {
		return nil, domain.Invalid("room", "unknown room")
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	p, err := s.repo.AddRoom(ctx, accountID, projectID, r, date)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// UpdateRoom edits a room specification.
func (s *ProjectService) UpdateRoom(ctx context.Context, accountID, specID string, room string, date time.Time) (*domain.Project, error) {
	r := domain.Room(room)
	if !r.Valid() {
		return nil, domain.Invalid("room", "unknown room")
	}
	p, err := s.repo.UpdateRoom(ctx, accountID, specID, r, date)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// DeleteRoom removes a room specification and its subtree.
func (s *ProjectService) DeleteRoom(ctx context.Context, accountID, specID string) (*domain.Project, error) {
	p, err := s.repo.DeleteRoom(ctx, accountID, specID)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// CopySpecification duplicates a room specification into another room of
// the same project.
func (s *ProjectService) CopySpecification(ctx context.Context, accountID, specID, targetRoom, depth string) (*domain.Project, error) {
	r := domain.Room(targetRoom)
	if !r.Valid() {
		return nil, domain.Invalid("room", "unknown room")
	}
	d := domain.CopyDepth(depth)
	if !d.Valid() {
		return nil, domain.Invalid("depth", "must be shallow or full")
	}
	p, err := s.repo.CopySpecification(ctx, accountID, specID, r, d)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// ImportRooms copies all room specifications from another project.
func (s *ProjectService) ImportRooms(ctx context.Context, accountID, projectID, sourceProjectID, depth string) (*domain.Project, error) {
	d := domain.CopyDepth(depth)
	if !d.Valid() {
		return nil, domain.Invalid("depth", "must be shallow or full")
	}
	if sourceProjectID == "" {
		return nil, domain.Invalid("source_project_id", "required")
	}
	p, err := s.repo.CopyRoomsFromProject(ctx, accountID, projectID, sourceProjectID, d)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// AddItem validates and inserts an item under the specification.
func (s *ProjectService) AddItem(ctx context.Context, accountID, specID string, in ItemInput) (*domain.Project, error) {
	categoryType, item, err := in.toItem()
	if err != nil {
		return nil, err
	}

	// Single currency per category: the first item fixes it.
	current, err := s.repo.ItemCurrencyContext(ctx, specID, categoryType)
	if err != nil {
		return nil, err
	}
	if current != "" && current != item.Currency {
		return nil, domain.Invalid("currency", "category is priced in "+current)
	}

	p, err := s.repo.AddItem(ctx, accountID, specID, categoryType, item)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// UpdateItem validates and fully replaces an item.
func (s *ProjectService) UpdateItem(ctx context.Context, accountID, itemID string, in ItemInput) (*domain.Project, error) {
	_, item, err := in.toItem()
	if err != nil {
		return nil, err
	}

	current, err := s.repo.ItemCategoryCurrency(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if current != "" && current != item.Currency {
		return nil, domain.Invalid("currency", "category is priced in "+current)
	}

	p, err := s.repo.UpdateItem(ctx, accountID, itemID, item)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// DeleteItem removes an item.
func (s *ProjectService) DeleteItem(ctx context.Context, accountID, itemID string) (*domain.Project, error) {
	p, err := s.repo.DeleteItem(ctx, accountID, itemID)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// CopyCategory deep-copies a category into a new type within its room.
func (s *ProjectService) CopyCategory(ctx context.Context, accountID, categoryID, targetType string) (*domain.Project, error) {
	t := domain.CategoryType(targetType)
	if !t.Valid() {
		return nil, domain.Invalid("type", "unknown category type")
	}
	p, err := s.repo.CopyCategory(ctx, accountID, categoryID, t)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// DeleteCategory removes a category and its items.
func (s *ProjectService) DeleteCategory(ctx context.Context, accountID, categoryID string) (*domain.Project, error) {
	p, err := s.repo.DeleteCategory(ctx, accountID, categoryID)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// AddAddress attaches an address to the project.
func (s *ProjectService) AddAddress(ctx context.Context, accountID, projectID string, in AddressInput) (*domain.Project, error) {
	addr, err := in.toAddress()
	if err != nil {
		return nil, err
	}
	p, err := s.repo.AddAddress(ctx, accountID, projectID, addr)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// UpdateAddress edits a project address.
func (s *ProjectService) UpdateAddress(ctx context.Context, accountID, projectID, addressID string, in AddressInput) (*domain.Project, error) {
	addr, err := in.toAddress()
	if err != nil {
		return nil, err
	}
	p, err := s.repo.UpdateAddress(ctx, accountID, projectID, addressID, addr)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// DeleteAddress removes a project address.
func (s *ProjectService) DeleteAddress(ctx context.Context, accountID, projectID, addressID string) (*domain.Project, error) {
	p, err := s.repo.DeleteAddress(ctx, accountID, projectID, addressID)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// ResendInvite re-sends a collaborator invite.
func (s *ProjectService) ResendInvite(ctx context.Context, accountID, projectID, collaboratorID string) (*domain.Project, error) {
	p, err := s.repo.ResendInvite(ctx, accountID, projectID, collaboratorID)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// AddDocument registers an uploaded file.
func (s *ProjectService) AddDocument(ctx context.Context, accountID, projectID string, in DocumentInput) (*domain.Project, error) {
	doc, err := in.toDocument()
	if err != nil {
		return nil, err
	}
	p, err := s.repo.AddDocument(ctx, accountID, projectID, doc)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// DeleteDocument removes a document record.
func (s *ProjectService) DeleteDocument(ctx context.Context, accountID, projectID, documentID string) (*domain.Project, error) {
	p, err := s.repo.DeleteDocument(ctx, accountID, projectID, documentID)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID, p), nil
}

// nullDate converts an optional date to its sql form.
func nullDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
