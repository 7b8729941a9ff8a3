package tax

import "context"

// Calculator defines the interface for tax calculation.
// Implementations: PercentageCalculator, NoTaxCalculator.
type Calculator interface {
	// CalculateTax computes tax for the order line items.
	// Returns tax amount in minor currency units.
	CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error)
}

// TaxParams contains all information needed for tax calculation.
type TaxParams struct {
	LineItems  []LineItem
	DiningMode string // "in-restaurant", "takeaway", "delivery"
}

// LineItem represents a single item being taxed.
type LineItem struct {
	MenuItemID  int64
	Description string
	Quantity    int
	UnitPrice   int64
	TotalPrice  int64
}

// TaxResult contains the calculated tax amount and breakdown.
type TaxResult struct {
	TotalTax  int64
	Breakdown []TaxBreakdown

	// IsEstimate is false for exact calculations.
	IsEstimate bool
}

// TaxBreakdown represents tax for a single component.
type TaxBreakdown struct {
	Name   string  // e.g., "VAT"
	Rate   float64 // e.g., 0.08 for 8%
	Amount int64
}
