package domain

// DiscountType distinguishes percentage vouchers from fixed-amount ones.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Voucher is a discount definition. Codes match case-insensitively and at
// most one voucher is applied to a cart at a time.
type Voucher struct {
	Code string       `json:"code"`
	Type DiscountType `json:"type"`

	// Amount is a whole percentage (e.g. 10 for 10%) for percentage
	// vouchers, or a fixed amount in minor currency units.
	Amount int64 `json:"amount"`

	// MinSubtotal is the pre-discount subtotal required to apply.
	MinSubtotal int64 `json:"min_subtotal"`
}
