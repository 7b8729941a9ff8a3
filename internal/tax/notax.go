package tax

import "context"

// NoTaxCalculator always returns zero tax. Used for tax-inclusive menus and
// in tests.
type NoTaxCalculator struct{}

// NewNoTaxCalculator creates a calculator that charges no tax.
func NewNoTaxCalculator() Calculator {
	return &NoTaxCalculator{}
}

// CalculateTax returns a zero tax result.
func (c *NoTaxCalculator) CalculateTax(_ context.Context, _ TaxParams) (*TaxResult, error) {
	return &TaxResult{
		TotalTax:   0,
		Breakdown:  []TaxBreakdown{},
		IsEstimate: false,
	}, nil
}
