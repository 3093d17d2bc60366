package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/swoop-build/swoop-backend/internal/money"
)

// Item is a single purchasable line within a category.
// Total is derived from Qty and Cost; it is never accepted from a client.
type Item struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Item       string `json:"item"`
	// OtherName overrides the display name when Item is "Other".
	OtherName     string          `json:"item2,omitempty"`
	Qty           int64           `json:"qty"`
	Cost          decimal.Decimal `json:"cost"`
	Currency      string          `json:"currency"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
	Model         string          `json:"model,omitempty"`
	UnitOfMeasure string          `json:"um,omitempty"`
	Description   string          `json:"description,omitempty"`
	Dimensions    string          `json:"dimensions,omitempty"`
	Finish        string          `json:"finish,omitempty"`
	Comments      string          `json:"comments,omitempty"`
	Provided      ProvidedBy      `json:"provided"`
	Phase         Phase           `json:"phase"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// DisplayName resolves the "Other" override.
func (i Item) DisplayName() string {
	if i.Item == "Other" && i.OtherName != "" {
		return i.OtherName
	}
	return i.Item
}

// Category groups items of one material type inside a room specification.
type Category struct {
	ID              string          `json:"id"`
	SpecificationID string          `json:"specification_id"`
	Type            CategoryType    `json:"type"`
	Items           []Item          `json:"items"`
	Total           decimal.Decimal `json:"total"`
}

// Currency returns the category's single currency, derived from its items.
// Empty categories have no currency yet and accept any supported one.
func (c Category) Currency() string {
	if len(c.Items) == 0 {
		return ""
	}
	return c.Items[0].Currency
}

// RoomSpecification is one room's full set of categories.
type RoomSpecification struct {
	ID         string          `json:"id"`
	ProjectID  string          `json:"project_id"`
	Room       Room            `json:"room"`
	Date       time.Time       `json:"date"`
	Categories []Category      `json:"categories"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Address is a project or account address; at most one per type.
type Address struct {
	ID      string      `json:"id"`
	Type    AddressType `json:"type"`
	Line1   string      `json:"line1"`
	Line2   string      `json:"line2,omitempty"`
	City    string      `json:"city"`
	State   string      `json:"state"`
	Zip     string      `json:"zip"`
	Country string      `json:"country,omitempty"`
}

// Collaborator is a named party on a project, optionally invited as a user.
type Collaborator struct {
	ID         string           `json:"id"`
	Role       CollaboratorRole `json:"role"`
	Name       string           `json:"name"`
	Email      string           `json:"email,omitempty"`
	Invite     InviteStatus     `json:"invite"`
	InvitedAt  *time.Time       `json:"invited_at,omitempty"`
	RemindedAt *time.Time       `json:"reminded_at,omitempty"`
}

// Document is an uploaded file registered against a project after the
// bytes have landed in object storage.
type Document struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	FileType  string    `json:"fileType"`
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Project is the aggregate root. Every mutating operation on any
// sub-resource returns the complete, recomputed Project; clients replace
// their held copy verbatim.
type Project struct {
	ID             string              `json:"id"`
	Code           string              `json:"code"`
	Name           string              `json:"name"`
	Type           ProjectType         `json:"type"`
	Size           ProjectSize         `json:"size"`
	Status         ProjectStatus       `json:"status"`
	StartDate      time.Time           `json:"startDate"`
	Scope          string              `json:"scope,omitempty"`
	Addresses      []Address           `json:"addresses"`
	Collaborators  []Collaborator      `json:"collaborators"`
	Documents      []Document          `json:"documents"`
	Specifications []RoomSpecification `json:"specifications"`
	Total          decimal.Decimal     `json:"total"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// Recompute rebuilds every derived total bottom-up: item totals from
// qty*cost, category totals from items, room totals from categories, the
// project total from rooms. Safe to run any number of times on the same
// snapshot.
func (p *Project) Recompute() {
	projectTotal := decimal.Zero
	for si := range p.Specifications {
		spec := &p.Specifications[si]
		roomTotal := decimal.Zero
		for ci := range spec.Categories {
			cat := &spec.Categories[ci]
			catTotal := decimal.Zero
			for ii := range cat.Items {
				item := &cat.Items[ii]
				item.Total = money.ItemTotal(item.Qty, item.Cost, item.Currency)
				catTotal = catTotal.Add(item.Total)
			}
			cat.Total = catTotal
			roomTotal = roomTotal.Add(catTotal)
		}
		spec.Total = roomTotal
		projectTotal = projectTotal.Add(roomTotal)
	}
	p.Total = projectTotal
}

// Specification finds a room specification by id.
func (p *Project) Specification(id string) *RoomSpecification {
	for i := range p.Specifications {
		if p.Specifications[i].ID == id {
			return &p.Specifications[i]
		}
	}
	return nil
}

// CategoryByID finds a category anywhere in the project tree.
func (p *Project) CategoryByID(id string) *Category {
	for si := range p.Specifications {
		for ci := range p.Specifications[si].Categories {
			if p.Specifications[si].Categories[ci].ID == id {
				return &p.Specifications[si].Categories[ci]
			}
		}
	}
	return nil
}

// HasAddressType reports whether an address of this type already exists.
func (p *Project) HasAddressType(t AddressType) bool {
	for _, a := range p.Addresses {
		if a.Type == t {
			return true
		}
	}
	return false
}

// HasCollaboratorRole reports whether the role is already filled.
func (p *Project) HasCollaboratorRole(r CollaboratorRole) bool {
	for _, c := range p.Collaborators {
		if c.Role == r {
			return true
		}
	}
	return false
}
