package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

func TestItemInput_ToItem(t *testing.T) {
	t.Run("coerces qty and cost strings", func(t *testing.T) {
		in := ItemInput{
			Category: "plumbing",
			Item:     "Faucet",
			Qty:      "2",
			Cost:     "$1,150.00",
			Provided: "designer",
			Phase:    "trim",
		}
		categoryType, item, err := in.toItem()
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryPlumbing, categoryType)
		assert.Equal(t, int64(2), item.Qty)
		assert.Equal(t, "1150", item.Cost.String())
		assert.Equal(t, "2300", item.Total.String())
		assert.Equal(t, "USD", item.Currency)
	})

	t.Run("garbage qty and cost become zero", func(t *testing.T) {
		in := ItemInput{Category: "lighting", Item: "Sconce", Qty: "a few", Cost: "call for price"}
		_, item, err := in.toItem()
		require.NoError(t, err)
		assert.Zero(t, item.Qty)
		assert.True(t, item.Cost.IsZero())
		assert.True(t, item.Total.IsZero())
	})

	t.Run("negative values become zero", func(t *testing.T) {
		in := ItemInput{Category: "lighting", Item: "Sconce", Qty: "-3", Cost: "-10.00"}
		_, item, err := in.toItem()
		require.NoError(t, err)
		assert.Zero(t, item.Qty)
		assert.True(t, item.Cost.IsZero())
	})

	t.Run("defaults provider and phase", func(t *testing.T) {
		in := ItemInput{Category: "hardware", Item: "Pull"}
		_, item, err := in.toItem()
		require.NoError(t, err)
		assert.Equal(t, domain.ProvidedContractor, item.Provided)
		assert.Equal(t, domain.PhasePre, item.Phase)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		in := ItemInput{Category: "landscaping", Item: "Shrub"}
		_, _, err := in.toItem()
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("rejects missing item name", func(t *testing.T) {
		in := ItemInput{Category: "plumbing", Item: "   "}
		_, _, err := in.toItem()
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("rejects unsupported currency", func(t *testing.T) {
		in := ItemInput{Category: "plumbing", Item: "Faucet", Currency: "JPY"}
		_, _, err := in.toItem()
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestProjectInput_ToCreate(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		in := ProjectInput{Name: "Lakeside"}
		create, err := in.toCreate()
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectNew, create.Type)
		assert.Equal(t, domain.SizeMedium, create.Size)
		assert.Equal(t, domain.StatusPreConstruction, create.Status)
		assert.False(t, create.StartDate.Valid)
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := ProjectInput{Name: "  "}.toCreate()
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("skips blank collaborator rows but keeps roles unique", func(t *testing.T) {
		in := ProjectInput{
			Name: "Lakeside",
			Collaborators: []CollaboratorInput{
				{Role: "architect", Name: "Maya Lin", Email: "maya@example.com"},
				{Role: "contractor", Name: ""},
			},
		}
		create, err := in.toCreate()
		require.NoError(t, err)
		require.Len(t, create.Collaborators, 1)
		assert.Equal(t, domain.RoleArchitect, create.Collaborators[0].Role)
		assert.Equal(t, domain.InviteUnasked, create.Collaborators[0].Invite)
	})

	t.Run("rejects duplicate roles", func(t *testing.T) {
		in := ProjectInput{
			Name: "Lakeside",
			Collaborators: []CollaboratorInput{
				{Role: "architect", Name: "Maya Lin"},
				{Role: "architect", Name: "Frank Gehry"},
			},
		}
		_, err := in.toCreate()
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("rejects duplicate address types", func(t *testing.T) {
		in := ProjectInput{
			Name: "Lakeside",
			Addresses: []AddressInput{
				{Type: "mailing", Line1: "1 Main St"},
				{Type: "mailing", Line1: "2 Main St"},
			},
		}
		_, err := in.toCreate()
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestProjectUpdateInput_ToUpdate(t *testing.T) {
	t.Run("nil fields are left alone", func(t *testing.T) {
		update, err := ProjectUpdateInput{}.toUpdate()
		require.NoError(t, err)
		assert.Nil(t, update.Name)
		assert.Nil(t, update.Size)
		assert.Nil(t, update.Collaborators)
		assert.Nil(t, update.Addresses)
	})

	t.Run("empty slice clears the collection", func(t *testing.T) {
		in := ProjectUpdateInput{Collaborators: []CollaboratorInput{}}
		update, err := in.toUpdate()
		require.NoError(t, err)
		assert.NotNil(t, update.Collaborators)
		assert.Empty(t, update.Collaborators)
	})

	t.Run("rejects blanking the name", func(t *testing.T) {
		blank := " "
		_, err := ProjectUpdateInput{Name: &blank}.toUpdate()
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		bad := "paused"
		_, err := ProjectUpdateInput{Status: &bad}.toUpdate()
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestDocumentInput_ToDocument(t *testing.T) {
	t.Run("requires file name and url", func(t *testing.T) {
		_, err := DocumentInput{URL: "https://x"}.toDocument()
		assert.True(t, domain.IsValidation(err))

		_, err = DocumentInput{FileName: "plan.pdf"}.toDocument()
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("passes through a complete registration", func(t *testing.T) {
		doc, err := DocumentInput{FileName: "plan.pdf", FileType: "application/pdf", Size: 1024, URL: "https://x/plan.pdf"}.toDocument()
		require.NoError(t, err)
		assert.Equal(t, "plan.pdf", doc.FileName)
		assert.Equal(t, int64(1024), doc.Size)
	})
}
