package domain

import "context"

// Cart domain errors.
var (
	ErrCartLineNotFound = &Error{Code: ENOTFOUND, Message: "Cart line not found"}
	ErrCartEmpty        = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrVoucherNotFound  = &Error{Code: ENOTFOUND, Message: "Voucher not found"}
	ErrVoucherMinimum   = &Error{Code: EINVALID, Message: "Minimum order amount not met for this voucher"}
)

// CartLine is one row in a customer's working order. Its identity for merge
// and mutation purposes is Key: the item ID combined with the canonical form
// of the selected modifiers. Two additions with the same item and identical
// selections increment the existing line; any difference creates a new line.
type CartLine struct {
	// Key uniquely identifies the line within its cart.
	Key string `json:"key"`

	Item       MenuItem          `json:"item"`
	Quantity   int               `json:"quantity"`
	Selections SelectedModifiers `json:"selections,omitempty"`

	// ModifierPrice is the per-unit price contributed by the selected
	// options, resolved once when the line was created.
	ModifierPrice int64 `json:"modifier_price"`

	// Notes is a free-text kitchen note for this line.
	Notes string `json:"notes,omitempty"`
}

// UnitPrice is the effective per-unit price of the line.
func (l *CartLine) UnitPrice() int64 {
	return l.Item.BasePrice + l.ModifierPrice
}

// LineSubtotal is the line's contribution to the cart subtotal.
func (l *CartLine) LineSubtotal() int64 {
	return l.UnitPrice() * int64(l.Quantity)
}

// CartSummary aggregates a cart's lines with freshly computed totals.
// Totals are derived on every read; nothing is cached between mutations.
type CartSummary struct {
	SessionID     string     `json:"session_id"`
	Lines         []CartLine `json:"lines"`
	ItemCount     int        `json:"item_count"`
	Subtotal      int64      `json:"subtotal"`
	Tax           int64      `json:"tax"`
	ServiceCharge int64      `json:"service_charge"`
	Discount      int64      `json:"discount"`
	Total         int64      `json:"total"`
	Voucher       *Voucher   `json:"voucher,omitempty"`
}

// CartService provides business logic for the session-scoped order cart.
// A cart is owned by exactly one customer session and lives only in memory
// for the duration of that session.
type CartService interface {
	// GetCart returns the cart summary for a session, creating an empty
	// cart if the session has none yet.
	GetCart(ctx context.Context, sessionID string) (*CartSummary, error)

	// AddItem adds a menu item with the given modifier selections, merging
	// into an existing line when the item and selections are identical.
	// Selections are validated against the item's modifier groups first.
	AddItem(ctx context.Context, sessionID string, itemID int64, quantity int, selections SelectedModifiers, notes string) (*CartSummary, error)

	// UpdateQuantity sets the quantity of the line identified by lineKey.
	// A quantity of 0 or less removes the line.
	UpdateQuantity(ctx context.Context, sessionID, lineKey string, quantity int) (*CartSummary, error)

	// RemoveLine removes the line identified by lineKey. Removing an
	// absent line is a no-op.
	RemoveLine(ctx context.Context, sessionID, lineKey string) (*CartSummary, error)

	// ApplyVoucher validates the code against the current subtotal and,
	// on success, replaces any previously applied voucher.
	ApplyVoucher(ctx context.Context, sessionID, code string) (*CartSummary, error)

	// RemoveVoucher clears the applied voucher.
	RemoveVoucher(ctx context.Context, sessionID string) (*CartSummary, error)

	// ClearCart empties the cart after a successful order submission.
	ClearCart(ctx context.Context, sessionID string) error
}
