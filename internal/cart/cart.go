package cart

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/mesa-pos/mesa/internal/domain"
	"github.com/mesa-pos/mesa/internal/pricing"
	"github.com/mesa-pos/mesa/internal/tax"
)

// Service is the in-memory, session-scoped cart store. Each cart is owned by
// exactly one customer session; the store itself is mutex-guarded because
// HTTP handlers run concurrently. Carts live only for the duration of a
// session and are discarded on clear.
type Service struct {
	menu              domain.MenuService
	taxCalc           tax.Calculator
	vouchers          *pricing.VoucherCatalog
	serviceChargeRate float64

	mu    sync.Mutex
	carts map[string]*state
}

// state is one session's working order.
type state struct {
	lines   []domain.CartLine
	voucher *domain.Voucher
	touched time.Time
}

// Compile-time check that Service implements domain.CartService.
var _ domain.CartService = (*Service)(nil)

// NewService creates the cart service. A serviceChargeRate of 0 disables the
// service charge line.
func NewService(menu domain.MenuService, taxCalc tax.Calculator, vouchers *pricing.VoucherCatalog, serviceChargeRate float64) *Service {
	return &Service{
		menu:              menu,
		taxCalc:           taxCalc,
		vouchers:          vouchers,
		serviceChargeRate: serviceChargeRate,
		carts:             make(map[string]*state),
	}
}

// GetCart returns the summary for a session, creating an empty cart if the
// session has none yet.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*domain.CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.summarize(ctx, sessionID, s.cart(sessionID))
}

// AddItem validates the selection, resolves its price once, and merges the
// line into the cart. Lines merge when item ID and canonical selections are
// identical; any difference in selections creates a distinct line.
func (s *Service) AddItem(ctx context.Context, sessionID string, itemID int64, quantity int, selections domain.SelectedModifiers, notes string) (*domain.CartSummary, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	item, err := s.menu.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Availability != domain.AvailabilityAvailable {
		return nil, domain.ErrMenuItemUnavailable
	}

	if err := pricing.ValidateSelections(item, selections); err != nil {
		return nil, err
	}

	modifierPrice := pricing.ResolveModifierPrice(item, selections)
	key := pricing.LineKey(item.ID, selections)

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	merged := false
	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines[i].Quantity += quantity
			if notes != "" {
				c.lines[i].Notes = notes
			}
			merged = true
			break
		}
	}
	if !merged {
		c.lines = append(c.lines, domain.CartLine{
			Key:           key,
			Item:          *item,
			Quantity:      quantity,
			Selections:    selections.Clone(),
			ModifierPrice: modifierPrice,
			Notes:         notes,
		})
	}

	return s.summarize(ctx, sessionID, c)
}

// UpdateQuantity sets a line's quantity; 0 or less removes the line. The
// line is addressed by its full key so a cart holding the same item with
// different modifiers can never have the wrong line mutated.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, lineKey string, quantity int) (*domain.CartSummary, error) {
	if quantity <= 0 {
		return s.RemoveLine(ctx, sessionID, lineKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	for i := range c.lines {
		if c.lines[i].Key == lineKey {
			c.lines[i].Quantity = quantity
			return s.summarize(ctx, sessionID, c)
		}
	}

	return nil, domain.ErrCartLineNotFound
}

// RemoveLine removes a line by key. Removing an absent key is a no-op.
func (s *Service) RemoveLine(ctx context.Context, sessionID, lineKey string) (*domain.CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	for i := range c.lines {
		if c.lines[i].Key == lineKey {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}

	return s.summarize(ctx, sessionID, c)
}

// ApplyVoucher validates the code against the current subtotal and replaces
// any previously applied voucher. Rejection leaves the applied voucher
// unchanged.
func (s *Service) ApplyVoucher(ctx context.Context, sessionID, code string) (*domain.CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	voucher, err := s.vouchers.Apply(code, subtotal(c.lines))
	if err != nil {
		return nil, err
	}
	c.voucher = voucher

	return s.summarize(ctx, sessionID, c)
}

// RemoveVoucher clears the applied voucher. Always succeeds.
func (s *Service) RemoveVoucher(ctx context.Context, sessionID string) (*domain.CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	c.voucher = nil

	return s.summarize(ctx, sessionID, c)
}

// ClearCart discards the session's cart, typically after a successful order
// submission.
func (s *Service) ClearCart(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

// cart returns the session's cart, creating one if needed. Every access
// refreshes the idle timestamp so active sessions are never pruned.
// Callers must hold s.mu.
func (s *Service) cart(sessionID string) *state {
	c, ok := s.carts[sessionID]
	if !ok {
		c = &state{}
		s.carts[sessionID] = c
	}
	c.touched = time.Now()
	return c
}

// PruneIdle drops carts that have not been touched within maxIdle and
// returns how many were removed. Customers who walk away mid-browse leave
// carts behind; the janitor calls this on an interval.
func (s *Service) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for sessionID, c := range s.carts {
		if c.touched.Before(cutoff) {
			delete(s.carts, sessionID)
			removed++
		}
	}
	return removed
}

func subtotal(lines []domain.CartLine) int64 {
	var total int64
	for i := range lines {
		total += lines[i].LineSubtotal()
	}
	return total
}

// summarize derives all totals fresh from the current lines. A voucher whose
// minimum is no longer met (lines were removed after it was applied) is
// dropped so the cart never carries a voucher it does not qualify for.
// Callers must hold s.mu.
func (s *Service) summarize(ctx context.Context, sessionID string, c *state) (*domain.CartSummary, error) {
	sub := subtotal(c.lines)

	if c.voucher != nil && sub < c.voucher.MinSubtotal {
		c.voucher = nil
	}

	taxItems := make([]tax.LineItem, len(c.lines))
	itemCount := 0
	for i := range c.lines {
		line := &c.lines[i]
		itemCount += line.Quantity
		taxItems[i] = tax.LineItem{
			MenuItemID:  line.Item.ID,
			Description: line.Item.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice(),
			TotalPrice:  line.LineSubtotal(),
		}
	}

	taxResult, err := s.taxCalc.CalculateTax(ctx, tax.TaxParams{LineItems: taxItems})
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "cart.summarize", "tax calculation failed")
	}

	serviceCharge := int64(math.Round(float64(sub) * s.serviceChargeRate))

	// A fixed discount can exceed what is owed; clamp so the grand total
	// never goes negative.
	discount := pricing.Discount(c.voucher, sub)
	if max := sub + taxResult.TotalTax + serviceCharge; discount > max {
		discount = max
	}

	lines := make([]domain.CartLine, len(c.lines))
	copy(lines, c.lines)

	return &domain.CartSummary{
		SessionID:     sessionID,
		Lines:         lines,
		ItemCount:     itemCount,
		Subtotal:      sub,
		Tax:           taxResult.TotalTax,
		ServiceCharge: serviceCharge,
		Discount:      discount,
		Total:         sub + taxResult.TotalTax + serviceCharge - discount,
		Voucher:       c.voucher,
	}, nil
}
