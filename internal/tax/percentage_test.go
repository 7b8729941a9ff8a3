package tax_test

import (
	"context"
	"math"
	"testing"

	"github.com/mesa-pos/mesa/internal/tax"
	"github.com/stretchr/testify/assert"
)

func TestPercentageCalculator_EightPercent(t *testing.T) {
	calc := tax.NewPercentageCalculator(tax.DefaultVATRate)

	params := tax.TaxParams{
		LineItems: []tax.LineItem{
			{
				MenuItemID:  42,
				Description: "Pho Bo (Large)",
				Quantity:    2,
				UnitPrice:   120_000,
				TotalPrice:  240_000,
			},
		},
	}

	result, err := calc.CalculateTax(context.Background(), params)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int64(19_200), result.TotalTax, "240000 * 0.08 = 19200")
	assert.Len(t, result.Breakdown, 1)
	assert.Equal(t, "VAT", result.Breakdown[0].Name)
	assert.Equal(t, 0.08, result.Breakdown[0].Rate)
	assert.Equal(t, int64(19_200), result.Breakdown[0].Amount)
	assert.False(t, result.IsEstimate, "percentage calculator provides exact amounts")
}

func TestPercentageCalculator_Rates(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		subtotal    int64
		expectedTax int64
		explanation string
	}{
		{
			name:        "zero percent rate",
			rate:        0.0,
			subtotal:    100_000,
			expectedTax: 0,
			explanation: "100000 * 0.00 = 0",
		},
		{
			name:        "five percent rate",
			rate:        0.05,
			subtotal:    100_000,
			expectedTax: 5_000,
			explanation: "100000 * 0.05 = 5000",
		},
		{
			name:        "eight percent rate",
			rate:        0.08,
			subtotal:    150_000,
			expectedTax: 12_000,
			explanation: "150000 * 0.08 = 12000",
		},
		{
			name:        "ten percent rate",
			rate:        0.10,
			subtotal:    75_500,
			expectedTax: 7_550,
			explanation: "75500 * 0.10 = 7550",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := tax.NewPercentageCalculator(tt.rate)

			result, err := calc.CalculateTax(context.Background(), tax.TaxParams{
				LineItems: []tax.LineItem{{TotalPrice: tt.subtotal}},
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedTax, result.TotalTax, tt.explanation)
			assert.Equal(t, tt.rate, result.Breakdown[0].Rate)
		})
	}
}

func TestPercentageCalculator_Rounding(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		subtotal    int64
		expectedTax int64
		explanation string
	}{
		{
			name:        "rounds up above midpoint",
			rate:        0.08,
			subtotal:    1_062,
			expectedTax: 85,
			explanation: "1062 * 0.08 = 84.96, rounds to 85",
		},
		{
			name:        "rounds down below midpoint",
			rate:        0.08,
			subtotal:    1_040,
			expectedTax: 83,
			explanation: "1040 * 0.08 = 83.2, rounds to 83",
		},
		{
			name:        "exact amount no rounding",
			rate:        0.10,
			subtotal:    1_000,
			expectedTax: 100,
			explanation: "1000 * 0.10 = 100.0 exactly",
		},
		{
			name:        "tiny amounts round to nearest",
			rate:        0.08,
			subtotal:    10,
			expectedTax: 1,
			explanation: "10 * 0.08 = 0.8, rounds to 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := tax.NewPercentageCalculator(tt.rate)

			result, err := calc.CalculateTax(context.Background(), tax.TaxParams{
				LineItems: []tax.LineItem{{TotalPrice: tt.subtotal}},
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedTax, result.TotalTax, tt.explanation)

			expectedFloat := math.Round(float64(tt.subtotal) * tt.rate)
			assert.Equal(t, int64(expectedFloat), result.TotalTax, "should match math.Round behavior")
		})
	}
}

func TestPercentageCalculator_MultipleLineItems(t *testing.T) {
	calc := tax.NewPercentageCalculator(0.08)

	result, err := calc.CalculateTax(context.Background(), tax.TaxParams{
		LineItems: []tax.LineItem{
			{Description: "Pho Bo", TotalPrice: 240_000},
			{Description: "Goi Cuon", TotalPrice: 60_000},
			{Description: "Iced Tea", TotalPrice: 15_000},
		},
	})

	assert.NoError(t, err)
	// Subtotal: 240000 + 60000 + 15000 = 315000; 315000 * 0.08 = 25200
	assert.Equal(t, int64(25_200), result.TotalTax)
}

func TestPercentageCalculator_EmptyOrder(t *testing.T) {
	calc := tax.NewPercentageCalculator(0.08)

	result, err := calc.CalculateTax(context.Background(), tax.TaxParams{})

	assert.NoError(t, err)
	assert.Zero(t, result.TotalTax)
}

func TestPercentageCalculator_Idempotent(t *testing.T) {
	calc := tax.NewPercentageCalculator(0.08)
	params := tax.TaxParams{
		LineItems: []tax.LineItem{{TotalPrice: 123_456}},
	}

	first, err1 := calc.CalculateTax(context.Background(), params)
	second, err2 := calc.CalculateTax(context.Background(), params)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first.TotalTax, second.TotalTax)
}

func TestNoTaxCalculator(t *testing.T) {
	calc := tax.NewNoTaxCalculator()

	result, err := calc.CalculateTax(context.Background(), tax.TaxParams{
		LineItems: []tax.LineItem{{TotalPrice: 1_000_000}},
	})

	assert.NoError(t, err)
	assert.Zero(t, result.TotalTax)
	assert.Empty(t, result.Breakdown)
}
