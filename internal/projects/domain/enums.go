package domain

// CategoryType groups specification items by material domain.
type CategoryType string

const (
	CategoryPlumbing    CategoryType = "plumbing"
	CategoryLighting    CategoryType = "lighting"
	CategoryFinishes    CategoryType = "finishes"
	CategoryStone       CategoryType = "stone"
	CategoryAppliances  CategoryType = "appliances"
	CategoryAccessories CategoryType = "accessories"
	CategoryUpholstery  CategoryType = "upholstery"
	CategoryFurnishings CategoryType = "furnishings"
	CategoryHardware    CategoryType = "hardware"
	CategoryMillwork    CategoryType = "millwork"
)

var categoryLabels = map[CategoryType]string{
	CategoryPlumbing:    "Plumbing",
	CategoryLighting:    "Lighting",
	CategoryFinishes:    "Finishes",
	CategoryStone:       "Tile and Stone",
	CategoryAppliances:  "Appliances",
	CategoryAccessories: "Accessories",
	CategoryUpholstery:  "Upholstery",
	CategoryFurnishings: "Furnishings",
	CategoryHardware:    "Hardware",
	CategoryMillwork:    "Millwork",
}

func (c CategoryType) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c CategoryType) Label() string {
	return categoryLabels[c]
}

// Phase is the construction phase an item is installed in.
type Phase string

const (
	PhasePre        Phase = "pre"
	PhaseDemo       Phase = "demo"
	PhaseSite       Phase = "site"
	PhaseFraming    Phase = "framing"
	PhaseMechanical Phase = "mechanical"
	PhaseTrim       Phase = "trim"
	PhaseFinish     Phase = "finish"
)

func (p Phase) Valid() bool {
	switch p {
	case PhasePre, PhaseDemo, PhaseSite, PhaseFraming, PhaseMechanical, PhaseTrim, PhaseFinish:
		return true
	}
	return false
}

// ProvidedBy records which party supplies an item.
type ProvidedBy string

const (
	ProvidedContractor ProvidedBy = "contractor"
	ProvidedDesigner   ProvidedBy = "designer"
	ProvidedOwner      ProvidedBy = "owner"
)

func (p ProvidedBy) Valid() bool {
	switch p {
	case ProvidedContractor, ProvidedDesigner, ProvidedOwner:
		return true
	}
	return false
}

// ProjectType distinguishes new construction from remodels and drives the
// public code prefix.
type ProjectType string

const (
	ProjectNew     ProjectType = "new"
	ProjectRemodel ProjectType = "remodel"
)

func (t ProjectType) Valid() bool {
	return t == ProjectNew || t == ProjectRemodel
}

// CodePrefix returns the prefix used in human-readable project codes.
func (t ProjectType) CodePrefix() string {
	if t == ProjectRemodel {
		return "R"
	}
	return "N"
}

// ProjectStatus tracks a project through construction.
type ProjectStatus string

const (
	StatusPreConstruction   ProjectStatus = "pre"
	StatusUnderConstruction ProjectStatus = "under"
	StatusFinishStage       ProjectStatus = "finish"
	StatusCompleted         ProjectStatus = "complete"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPreConstruction, StatusUnderConstruction, StatusFinishStage, StatusCompleted:
		return true
	}
	return false
}

// ProjectSize is a rough size bucket chosen at creation time.
type ProjectSize string

const (
	SizeSmall  ProjectSize = "sm"
	SizeMedium ProjectSize = "md"
	SizeLarge  ProjectSize = "lg"
)

func (s ProjectSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// AddressType distinguishes the at-most-one-per-type project addresses.
type AddressType string

const (
	AddressMailing  AddressType = "mailing"
	AddressMaterial AddressType = "material"
	AddressProject  AddressType = "project"
)

func (t AddressType) Valid() bool {
	switch t {
	case AddressMailing, AddressMaterial, AddressProject:
		return true
	}
	return false
}

// CollaboratorRole is the discipline a collaborator fills on a project.
// At most one collaborator per role.
type CollaboratorRole string

const (
	RoleArchitect  CollaboratorRole = "architect"
	RoleCivil      CollaboratorRole = "civil"
	RoleContractor CollaboratorRole = "contractor"
	RoleDesigner   CollaboratorRole = "designer"
	RoleGeotech    CollaboratorRole = "geotech"
	RoleHomeowner  CollaboratorRole = "homeowner"
	RoleLandscape  CollaboratorRole = "landscape"
	RoleLighting   CollaboratorRole = "lighting"
	RoleStructural CollaboratorRole = "structural"
)

func (r CollaboratorRole) Valid() bool {
	switch r {
	case RoleArchitect, RoleCivil, RoleContractor, RoleDesigner, RoleGeotech,
		RoleHomeowner, RoleLandscape, RoleLighting, RoleStructural:
		return true
	}
	return false
}

// InviteStatus tracks whether a collaborator has been invited as a user.
type InviteStatus string

const (
	InviteAccepted InviteStatus = "accepted"
	InviteDraft    InviteStatus = "draft"
	InvitePending  InviteStatus = "pending"
	InviteReminded InviteStatus = "reminded"
	InviteUnasked  InviteStatus = "unasked"
)

func (s InviteStatus) Valid() bool {
	switch s {
	case InviteAccepted, InviteDraft, InvitePending, InviteReminded, InviteUnasked:
		return true
	}
	return false
}

// CopyDepth selects how much of a source room specification is duplicated.
type CopyDepth string

const (
	// CopyShallow duplicates category shells only.
	CopyShallow CopyDepth = "shallow"
	// CopyFull duplicates categories with their items.
	CopyFull CopyDepth = "full"
)

func (d CopyDepth) Valid() bool {
	return d == CopyShallow || d == CopyFull
}
