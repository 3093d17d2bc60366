package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"plain integer", "2", 2},
		{"zero", "0", 0},
		{"empty", "", 0},
		{"whitespace", "   ", 0},
		{"non-numeric", "two", 0},
		{"decimal rejected", "2.5", 0},
		{"negative coerces to zero", "-3", 0},
		{"large", "100000", 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quantity(tt.in))
		})
	}
}

func TestCost(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain decimal", "150.00", "150"},
		{"integer", "175", "175"},
		{"thousands separator", "1,250.50", "1250.5"},
		{"currency noise", "$99.99", "99.99"},
		{"empty", "", "0"},
		{"non-numeric", "abc", "0"},
		{"negative coerces to zero", "-10.00", "0"},
		{"negative with currency noise", "$-10.00", "0"},
		{"negative with separator", "-1,250.50", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, want.Equal(Cost(tt.in)), "got %s", Cost(tt.in))
		})
	}
}

func TestItemTotal(t *testing.T) {
	t.Run("rounds to minor units", func(t *testing.T) {
		cost := decimal.RequireFromString("150.00")
		total := ItemTotal(2, cost, "USD")
		assert.Equal(t, "300", total.String())
	})

	t.Run("edit cost scenario", func(t *testing.T) {
		cost := decimal.RequireFromString("175.50")
		total := ItemTotal(2, cost, "USD")
		assert.Equal(t, "351", total.String())
	})

	t.Run("fractional rounding", func(t *testing.T) {
		cost := decimal.RequireFromString("0.335")
		total := ItemTotal(3, cost, "USD")
		// 1.005 rounds half away from zero to 1.01
		assert.Equal(t, "1.01", total.String())
	})

	t.Run("zero quantity", func(t *testing.T) {
		cost := decimal.RequireFromString("99.99")
		assert.True(t, ItemTotal(0, cost, "USD").IsZero())
	})

	t.Run("unknown currency falls back to 2 digits", func(t *testing.T) {
		cost := decimal.RequireFromString("1.555")
		assert.Equal(t, "1.56", ItemTotal(1, cost, "XXX").String())
	})
}

func TestSupportedCurrency(t *testing.T) {
	for _, code := range []string{"USD", "CAD", "GBP", "EUR"} {
		assert.True(t, SupportedCurrency(code), code)
	}
	assert.False(t, SupportedCurrency("JPY"))
	assert.False(t, SupportedCurrency(""))
}

func TestSum(t *testing.T) {
	a := decimal.RequireFromString("300.00")
	b := decimal.RequireFromString("51.00")
	assert.Equal(t, "351", Sum(a, b).String())
	assert.True(t, Sum().IsZero())
}
