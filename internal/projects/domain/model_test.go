package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kitchenProject(items ...Item) *Project {
	return &Project{
		ID:   "proj-1",
		Code: "N-48213-0917",
		Name: "Hillside House",
		Type: ProjectNew,
		Specifications: []RoomSpecification{
			{
				ID:        "spec-1",
				ProjectID: "proj-1",
				Room:      "kitchen",
				Categories: []Category{
					{
						ID:              "cat-1",
						SpecificationID: "spec-1",
						Type:            CategoryPlumbing,
						Items:           items,
					},
				},
			},
		},
	}
}

func TestRecompute_AddItem(t *testing.T) {
	p := kitchenProject(Item{
		ID:         "item-1",
		CategoryID: "cat-1",
		Item:       "Sink",
		Qty:        2,
		Cost:       decimal.RequireFromString("150.00"),
		Currency:   "USD",
	})

	p.Recompute()

	assert.Equal(t, "300", p.Specifications[0].Categories[0].Items[0].Total.String())
	assert.Equal(t, "300", p.Specifications[0].Categories[0].Total.String())
	assert.Equal(t, "300", p.Specifications[0].Total.String())
	assert.Equal(t, "300", p.Total.String())
}

func TestRecompute_EditCost(t *testing.T) {
	p := kitchenProject(Item{
		ID:         "item-1",
		CategoryID: "cat-1",
		Item:       "Sink",
		Qty:        2,
		Cost:       decimal.RequireFromString("150.00"),
		Currency:   "USD",
	})
	p.Recompute()

	p.Specifications[0].Categories[0].Items[0].Cost = decimal.RequireFromString("175.50")
	p.Recompute()

	assert.Equal(t, "351", p.Specifications[0].Categories[0].Items[0].Total.String())
	assert.Equal(t, "351", p.Specifications[0].Categories[0].Total.String())
}

func TestRecompute_DeleteOnlyItem(t *testing.T) {
	p := kitchenProject(Item{
		ID:       "item-1",
		Item:     "Sink",
		Qty:      2,
		Cost:     decimal.RequireFromString("150.00"),
		Currency: "USD",
	})
	p.Recompute()

	p.Specifications[0].Categories[0].Items = nil
	p.Recompute()

	assert.True(t, p.Specifications[0].Categories[0].Total.IsZero())
	assert.Empty(t, p.Specifications[0].Categories[0].Items)
	assert.True(t, p.Total.IsZero())
}

func TestRecompute_IgnoresClientSuppliedTotals(t *testing.T) {
	p := kitchenProject(Item{
		ID:       "item-1",
		Item:     "Sink",
		Qty:      1,
		Cost:     decimal.RequireFromString("100.00"),
		Currency: "USD",
		Total:    decimal.RequireFromString("999999.00"),
	})

	p.Recompute()

	assert.Equal(t, "100", p.Specifications[0].Categories[0].Items[0].Total.String())
}

func TestRecompute_Idempotent(t *testing.T) {
	p := kitchenProject(Item{
		ID:       "item-1",
		Item:     "Sink",
		Qty:      3,
		Cost:     decimal.RequireFromString("33.33"),
		Currency: "USD",
	})

	p.Recompute()
	first, err := json.Marshal(p)
	require.NoError(t, err)

	p.Recompute()
	second, err := json.Marshal(p)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRecompute_SumsAcrossRoomsAndCategories(t *testing.T) {
	p := &Project{
		ID: "proj-1",
		Specifications: []RoomSpecification{
			{
				ID:   "spec-1",
				Room: "kitchen",
				Categories: []Category{
					{
						ID:   "cat-1",
						Type: CategoryPlumbing,
						Items: []Item{
							{ID: "i1", Qty: 2, Cost: decimal.RequireFromString("150.00"), Currency: "USD"},
							{ID: "i2", Qty: 1, Cost: decimal.RequireFromString("49.50"), Currency: "USD"},
						},
					},
					{
						ID:   "cat-2",
						Type: CategoryLighting,
						Items: []Item{
							{ID: "i3", Qty: 4, Cost: decimal.RequireFromString("25.00"), Currency: "USD"},
						},
					},
				},
			},
			{
				ID:   "spec-2",
				Room: "bathroom1",
				Categories: []Category{
					{
						ID:   "cat-3",
						Type: CategoryStone,
						Items: []Item{
							{ID: "i4", Qty: 10, Cost: decimal.RequireFromString("12.25"), Currency: "USD"},
						},
					},
				},
			},
		},
	}

	p.Recompute()

	assert.Equal(t, "349.5", p.Specifications[0].Categories[0].Total.String())
	assert.Equal(t, "100", p.Specifications[0].Categories[1].Total.String())
	assert.Equal(t, "449.5", p.Specifications[0].Total.String())
	assert.Equal(t, "122.5", p.Specifications[1].Total.String())
	assert.Equal(t, "572", p.Total.String())
}

func TestItemDisplayName(t *testing.T) {
	assert.Equal(t, "Sink", Item{Item: "Sink"}.DisplayName())
	assert.Equal(t, "Pot filler", Item{Item: "Other", OtherName: "Pot filler"}.DisplayName())
	assert.Equal(t, "Other", Item{Item: "Other"}.DisplayName())
}

func TestCategoryCurrency(t *testing.T) {
	assert.Empty(t, Category{}.Currency())
	c := Category{Items: []Item{{Currency: "EUR"}, {Currency: "EUR"}}}
	assert.Equal(t, "EUR", c.Currency())
}

func TestProjectLookups(t *testing.T) {
	p := kitchenProject(Item{ID: "item-1"})

	require.NotNil(t, p.Specification("spec-1"))
	assert.Nil(t, p.Specification("missing"))

	require.NotNil(t, p.CategoryByID("cat-1"))
	assert.Nil(t, p.CategoryByID("missing"))

	p.Addresses = []Address{{ID: "addr-1", Type: AddressMailing}}
	assert.True(t, p.HasAddressType(AddressMailing))
	assert.False(t, p.HasAddressType(AddressProject))

	p.Collaborators = []Collaborator{{ID: "col-1", Role: RoleArchitect}}
	assert.True(t, p.HasCollaboratorRole(RoleArchitect))
	assert.False(t, p.HasCollaboratorRole(RoleContractor))
}

func TestNewProjectCode(t *testing.T) {
	codeNew, err := NewProjectCode(ProjectNew)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(codeNew, "N-"), codeNew)
	assert.Len(t, codeNew, 12)

	codeRemodel, err := NewProjectCode(ProjectRemodel)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(codeRemodel, "R-"), codeRemodel)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, Room("kitchen").Valid())
	assert.True(t, Room("other").Valid())
	assert.False(t, Room("attic").Valid())
	assert.Equal(t, "Tile and Stone", CategoryStone.Label())
	assert.True(t, CategoryPlumbing.Valid())
	assert.False(t, CategoryType("concrete").Valid())
	assert.True(t, PhaseMechanical.Valid())
	assert.False(t, Phase("warranty").Valid())
	assert.True(t, CopyFull.Valid())
	assert.False(t, CopyDepth("deep").Valid())
	assert.Equal(t, "N", ProjectNew.CodePrefix())
	assert.Equal(t, "R", ProjectRemodel.CodePrefix())
}
