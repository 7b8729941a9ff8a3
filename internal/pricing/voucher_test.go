package pricing_test

import (
	"testing"

	"github.com/mesa-pos/mesa/internal/domain"
	"github.com/mesa-pos/mesa/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherCatalog_Find(t *testing.T) {
	catalog := pricing.NewVoucherCatalog(pricing.DefaultVouchers()...)

	tests := []struct {
		name  string
		code  string
		found bool
	}{
		{"exact match", "WELCOME10", true},
		{"lowercase match", "welcome10", true},
		{"mixed case match", "Welcome10", true},
		{"surrounding whitespace", "  vip50 ", true},
		{"unknown code", "NOPE", false},
		{"empty code", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := catalog.Find(tt.code)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestVoucherCatalog_Apply(t *testing.T) {
	catalog := pricing.NewVoucherCatalog(pricing.DefaultVouchers()...)

	t.Run("accepts at threshold", func(t *testing.T) {
		v, err := catalog.Apply("WELCOME10", 50_000)
		require.NoError(t, err)
		assert.Equal(t, "WELCOME10", v.Code)
	})

	t.Run("accepts above threshold", func(t *testing.T) {
		v, err := catalog.Apply("VIP50", 250_000)
		require.NoError(t, err)
		assert.Equal(t, domain.DiscountFixed, v.Type)
	})

	t.Run("rejects below threshold", func(t *testing.T) {
		// VIP50 requires a 200,000 subtotal.
		_, err := catalog.Apply("VIP50", 150_000)
		assert.ErrorIs(t, err, domain.ErrVoucherMinimum)
	})

	t.Run("rejects unknown code", func(t *testing.T) {
		_, err := catalog.Apply("BOGUS", 1_000_000)
		assert.ErrorIs(t, err, domain.ErrVoucherNotFound)
	})
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		name     string
		voucher  *domain.Voucher
		subtotal int64
		expected int64
	}{
		{
			name:     "nil voucher",
			voucher:  nil,
			subtotal: 100_000,
			expected: 0,
		},
		{
			name:     "ten percent",
			voucher:  &domain.Voucher{Code: "WELCOME10", Type: domain.DiscountPercentage, Amount: 10},
			subtotal: 240_000,
			expected: 24_000,
		},
		{
			name:     "percentage rounds to nearest",
			voucher:  &domain.Voucher{Code: "ODD", Type: domain.DiscountPercentage, Amount: 15},
			subtotal: 333,
			expected: 50, // 333 * 0.15 = 49.95
		},
		{
			name:     "fixed amount",
			voucher:  &domain.Voucher{Code: "VIP50", Type: domain.DiscountFixed, Amount: 50_000},
			subtotal: 300_000,
			expected: 50_000,
		},
		{
			name:     "fixed amount exceeding subtotal is returned as-is",
			voucher:  &domain.Voucher{Code: "VIP50", Type: domain.DiscountFixed, Amount: 50_000},
			subtotal: 20_000,
			expected: 50_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pricing.Discount(tt.voucher, tt.subtotal))
		})
	}
}
