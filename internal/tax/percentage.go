package tax

import (
	"context"
	"math"
)

// DefaultVATRate is the restaurant VAT rate applied to the subtotal.
const DefaultVATRate = 0.08

// PercentageCalculator calculates tax as a flat percentage of the subtotal.
type PercentageCalculator struct {
	rate float64
}

// NewPercentageCalculator creates a new percentage-based tax calculator.
func NewPercentageCalculator(rate float64) Calculator {
	return &PercentageCalculator{rate: rate}
}

// CalculateTax computes tax on the line item subtotal using the configured
// rate, rounding to the nearest minor unit.
func (c *PercentageCalculator) CalculateTax(_ context.Context, params TaxParams) (*TaxResult, error) {
	var subtotal int64
	for _, item := range params.LineItems {
		subtotal += item.TotalPrice
	}

	amount := int64(math.Round(float64(subtotal) * c.rate))

	return &TaxResult{
		TotalTax: amount,
		Breakdown: []TaxBreakdown{
			{Name: "VAT", Rate: c.rate, Amount: amount},
		},
		IsEstimate: false,
	}, nil
}
