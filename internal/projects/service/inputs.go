package service

import (
	"strings"
	"time"

	"github.com/swoop-build/swoop-backend/internal/money"
	"github.com/swoop-build/swoop-backend/internal/projects/domain"
	"github.com/swoop-build/swoop-backend/internal/projects/repository"
)

// ItemInput is the raw item form payload. Qty and Cost arrive as strings
// because entry forms submit whatever was typed; coercion happens here.
type ItemInput struct {
	Category      string `json:"category"`
	Item          string `json:"item"`
	OtherName     string `json:"item2"`
	Qty           string `json:"qty"`
	Cost          string `json:"cost"`
	Currency      string `json:"currency"`
	Manufacturer  string `json:"manufacturer"`
	Model         string `json:"model"`
	UnitOfMeasure string `json:"um"`
	Description   string `json:"description"`
	Dimensions    string `json:"dimensions"`
	Finish        string `json:"finish"`
	Comments      string `json:"comments"`
	Provided      string `json:"provided"`
	Phase         string `json:"phase"`
}

func (in ItemInput) toItem() (domain.CategoryType, domain.Item, error) {
	categoryType := domain.CategoryType(in.Category)
	if !categoryType.Valid() {
		return "", domain.Item{}, domain.Invalid("category", "unknown category type")
	}

	name := strings.TrimSpace(in.Item)
	if name == "" {
		return "", domain.Item{}, domain.Invalid("item", "required")
	}

	currency := strings.TrimSpace(in.Currency)
	if currency == "" {
		currency = money.DefaultCurrency
	}
	if !money.SupportedCurrency(currency) {
		return "", domain.Item{}, domain.Invalid("currency", "unsupported currency")
	}

	provided := domain.ProvidedBy(in.Provided)
	if in.Provided != "" && !provided.Valid() {
		return "", domain.Item{}, domain.Invalid("provided", "unknown provider")
	}
	if in.Provided == "" {
		provided = domain.ProvidedContractor
	}

	phase := domain.Phase(in.Phase)
	if in.Phase != "" && !phase.Valid() {
		return "", domain.Item{}, domain.Invalid("phase", "unknown phase")
	}
	if in.Phase == "" {
		phase = domain.PhasePre
	}

	qty := money.Quantity(in.Qty)
	cost := money.Cost(in.Cost)

	item := domain.Item{
		Item:          name,
		OtherName:     strings.TrimSpace(in.OtherName),
		Qty:           qty,
		Cost:          cost,
		Currency:      currency,
		Manufacturer:  strings.TrimSpace(in.Manufacturer),
		Model:         strings.TrimSpace(in.Model),
		UnitOfMeasure: strings.TrimSpace(in.UnitOfMeasure),
		Description:   strings.TrimSpace(in.Description),
		Dimensions:    strings.TrimSpace(in.Dimensions),
		Finish:        strings.TrimSpace(in.Finish),
		Comments:      strings.TrimSpace(in.Comments),
		Provided:      provided,
		Phase:         phase,
		Total:         money.ItemTotal(qty, cost, currency),
	}
	return categoryType, item, nil
}

// CollaboratorInput names one party for a role.
type CollaboratorInput struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AddressInput is the address form payload.
type AddressInput struct {
	Type    string `json:"type"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

func (in AddressInput) toAddress() (domain.Address, error) {
	t := domain.AddressType(in.Type)
	if !t.Valid() {
		return domain.Address{}, domain.Invalid("type", "unknown address type")
	}
	if strings.TrimSpace(in.Line1) == "" {
		return domain.Address{}, domain.Invalid("line1", "required")
	}
	return domain.Address{
		Type:    t,
		Line1:   strings.TrimSpace(in.Line1),
		Line2:   strings.TrimSpace(in.Line2),
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
		Zip:     strings.TrimSpace(in.Zip),
		Country: strings.TrimSpace(in.Country),
	}, nil
}

// DocumentInput registers an already-uploaded file.
type DocumentInput struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}

func (in DocumentInput) toDocument() (domain.Document, error) {
	if strings.TrimSpace(in.FileName) == "" {
		return domain.Document{}, domain.Invalid("fileName", "required")
	}
	if strings.TrimSpace(in.URL) == "" {
		return domain.Document{}, domain.Invalid("url", "required")
	}
	return domain.Document{
		FileName: strings.TrimSpace(in.FileName),
		FileType: strings.TrimSpace(in.FileType),
		Size:     in.Size,
		URL:      strings.TrimSpace(in.URL),
	}, nil
}

// ProjectInput is the create-project form payload.
type ProjectInput struct {
	Name          string              `json:"name"`
	Type          string              `json:"type"`
	Size          string              `json:"size"`
	Status        string              `json:"status"`
	StartDate     time.Time           `json:"startDate"`
	Scope         string              `json:"scope"`
	Collaborators []CollaboratorInput `json:"collaborators"`
	Addresses     []AddressInput      `json:"addresses"`
}

func (in ProjectInput) toCreate() (repository.CreateInput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return repository.CreateInput{}, domain.Invalid("name", "required")
	}

	t := domain.ProjectType(in.Type)
	if in.Type == "" {
		t = domain.ProjectNew
	}
	if !t.Valid() {
		return repository.CreateInput{}, domain.Invalid("type", "must be new or remodel")
	}

	size := domain.ProjectSize(in.Size)
	if in.Size == "" {
		size = domain.SizeMedium
	}
	if !size.Valid() {
		return repository.CreateInput{}, domain.Invalid("size", "unknown size bucket")
	}

	status := domain.ProjectStatus(in.Status)
	if in.Status == "" {
		status = domain.StatusPreConstruction
	}
	if !status.Valid() {
		return repository.CreateInput{}, domain.Invalid("status", "unknown status")
	}

	collaborators, err := toCollaborators(in.Collaborators)
	if err != nil {
		return repository.CreateInput{}, err
	}
	addresses, err := toAddresses(in.Addresses)
	if err != nil {
		return repository.CreateInput{}, err
	}

	return repository.CreateInput{
		Name:          name,
		Type:          t,
		Size:          size,
		Status:        status,
		StartDate:     nullDate(in.StartDate),
		Scope:         in.Scope,
		Collaborators: collaborators,
		Addresses:     addresses,
	}, nil
}

// ProjectUpdateInput is the piecemeal project edit payload. Pointer
// fields distinguish "leave alone" from "set to zero value"; nil slices
// leave collections alone, non-nil slices replace them.
type ProjectUpdateInput struct {
	Name          *string             `json:"name"`
	Size          *string             `json:"size"`
	Status        *string             `json:"status"`
	StartDate     *time.Time          `json:"startDate"`
	Scope         *string             `json:"scope"`
	Collaborators []CollaboratorInput `json:"collaborators"`
	Addresses     []AddressInput      `json:"addresses"`
}

func (in ProjectUpdateInput) toUpdate() (repository.UpdateInput, error) {
	out := repository.UpdateInput{Scope: in.Scope}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return repository.UpdateInput{}, domain.Invalid("name", "required")
		}
		out.Name = &name
	}
	if in.Size != nil {
		size := domain.ProjectSize(*in.Size)
		if !size.Valid() {
			return repository.UpdateInput{}, domain.Invalid("size", "unknown size bucket")
		}
		out.Size = &size
	}
	if in.Status != nil {
		status := domain.ProjectStatus(*in.Status)
		if !status.Valid() {
			return repository.UpdateInput{}, domain.Invalid("status", "unknown status")
		}
		out.Status = &status
	}
	if in.StartDate != nil {
		out.StartDate = nullDate(*in.StartDate)
	}

	if in.Collaborators != nil {
		collaborators, err := toCollaborators(in.Collaborators)
		if err != nil {
			return repository.UpdateInput{}, err
		}
		out.Collaborators = collaborators
	}
	if in.Addresses != nil {
		addresses, err := toAddresses(in.Addresses)
		if err != nil {
			return repository.UpdateInput{}, err
		}
		out.Addresses = addresses
	}
	return out, nil
}

// toCollaborators validates the replace-set: known roles, one entry per
// role, names present.
func toCollaborators(inputs []CollaboratorInput) ([]domain.Collaborator, error) {
	seen := make(map[domain.CollaboratorRole]bool, len(inputs))
	out := make([]domain.Collaborator, 0, len(inputs))
	for _, in := range inputs {
		role := domain.CollaboratorRole(in.Role)
		if !role.Valid() {
			return nil, domain.Invalid("role", "unknown collaborator role")
		}
		if seen[role] {
			return nil, domain.Invalid("role", "duplicate collaborator role "+in.Role)
		}
		seen[role] = true

		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue // blank rows from the create form are skipped
		}
		out = append(out, domain.Collaborator{
			Role:   role,
			Name:   name,
			Email:  strings.TrimSpace(in.Email),
			Invite: domain.InviteUnasked,
		})
	}
	return out, nil
}

// toAddresses validates the replace-set: known types, one entry per type.
func toAddresses(inputs []AddressInput) ([]domain.Address, error) {
	seen := make(map[domain.AddressType]bool, len(inputs))
	out := make([]domain.Address, 0, len(inputs))
	for _, in := range inputs {
		addr, err := in.toAddress()
		if err != nil {
			return nil, err
		}
		if seen[addr.Type] {
			return nil, domain.Invalid("type", "duplicate address type "+in.Type)
		}
		seen[addr.Type] = true
		out = append(out, addr)
	}
	return out, nil
}
