package pricing

import (
	"math"
	"strings"

	"github.com/mesa-pos/mesa/internal/domain"
)

// VoucherCatalog is the fixed set of known vouchers, matched by code
// case-insensitively. The catalog is static reference data; it is not
// fetched remotely.
type VoucherCatalog struct {
	vouchers map[string]domain.Voucher
}

// NewVoucherCatalog builds a catalog from the given vouchers.
func NewVoucherCatalog(vouchers ...domain.Voucher) *VoucherCatalog {
	c := &VoucherCatalog{vouchers: make(map[string]domain.Voucher, len(vouchers))}
	for _, v := range vouchers {
		c.vouchers[strings.ToUpper(v.Code)] = v
	}
	return c
}

// DefaultVouchers is the built-in voucher set.
func DefaultVouchers() []domain.Voucher {
	return []domain.Voucher{
		{Code: "WELCOME10", Type: domain.DiscountPercentage, Amount: 10, MinSubtotal: 50_000},
		{Code: "TASTY15", Type: domain.DiscountPercentage, Amount: 15, MinSubtotal: 100_000},
		{Code: "VIP50", Type: domain.DiscountFixed, Amount: 50_000, MinSubtotal: 200_000},
	}
}

// Find looks up a voucher by code, case-insensitively.
func (c *VoucherCatalog) Find(code string) (domain.Voucher, bool) {
	v, ok := c.vouchers[strings.ToUpper(strings.TrimSpace(code))]
	return v, ok
}

// Apply validates a code against the current pre-discount subtotal.
// It fails with ErrVoucherNotFound for unknown codes and ErrVoucherMinimum
// when the subtotal is below the voucher's threshold. Application itself is
// a pure check; the caller stores the returned voucher on the cart.
func (c *VoucherCatalog) Apply(code string, subtotal int64) (*domain.Voucher, error) {
	v, ok := c.Find(code)
	if !ok {
		return nil, domain.ErrVoucherNotFound
	}
	if subtotal < v.MinSubtotal {
		return nil, domain.ErrVoucherMinimum
	}
	return &v, nil
}

// Discount computes the discount a voucher yields against a subtotal.
// Percentage vouchers round to the nearest minor unit. Fixed vouchers return
// their face value; callers clamp the grand total at zero (see DESIGN.md on
// the unclamped-discount question).
func Discount(v *domain.Voucher, subtotal int64) int64 {
	if v == nil {
		return 0
	}
	switch v.Type {
	case domain.DiscountPercentage:
		return int64(math.Round(float64(subtotal) * float64(v.Amount) / 100))
	case domain.DiscountFixed:
		return v.Amount
	default:
		return 0
	}
}
