package table

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mesa-pos/mesa/internal/billing"
	"github.com/mesa-pos/mesa/internal/domain"
)

// Registry is the in-memory table roster for a single venue. Mutex-guarded
// because waiter and customer handlers mutate it concurrently.
type Registry struct {
	payments billing.Provider
	currency string

	mu     sync.Mutex
	tables map[int64]*domain.Table
	bills  map[int64]*domain.Bill
}

// Compile-time check that Registry implements domain.TableService.
var _ domain.TableService = (*Registry)(nil)

// NewRegistry creates a registry seeded with the given tables. The billing
// provider is only used for card settlements and may be nil when the venue
// is cash-only.
func NewRegistry(payments billing.Provider, currency string, tables []domain.Table) *Registry {
	r := &Registry{
		payments: payments,
		currency: currency,
		tables:   make(map[int64]*domain.Table, len(tables)),
		bills:    make(map[int64]*domain.Bill),
	}
	for i := range tables {
		t := tables[i]
		if t.Status == "" {
			t.Status = domain.TableAvailable
		}
		r.tables[t.ID] = &t
	}
	return r
}

// DefaultTables returns the seed roster used when no database is configured.
func DefaultTables() []domain.Table {
	tables := make([]domain.Table, 0, 12)
	for i := int64(1); i <= 12; i++ {
		seats := 4
		if i > 8 {
			seats = 6
		}
		tables = append(tables, domain.Table{
			ID:     i,
			Number: fmt.Sprintf("T%02d", i),
			Seats:  seats,
			Status: domain.TableAvailable,
		})
	}
	return tables
}

// ListTables returns all tables ordered by number.
func (r *Registry) ListTables(_ context.Context) ([]domain.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// Occupy marks an available table as occupied.
func (r *Registry) Occupy(_ context.Context, tableID int64) (*domain.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[tableID]
	if !ok {
		return nil, domain.ErrTableNotFound
	}
	if t.Status != domain.TableAvailable {
		return nil, domain.ErrTableOccupied
	}

	t.Status = domain.TableOccupied
	occupied := *t
	return &occupied, nil
}

// AddCharge records a confirmed order total against a table. Ordering to an
// available table occupies it implicitly; customers seat themselves before
// any waiter touches the roster.
func (r *Registry) AddCharge(_ context.Context, tableID int64, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[tableID]
	if !ok {
		return domain.ErrTableNotFound
	}

	if t.Status == domain.TableAvailable {
		t.Status = domain.TableOccupied
	}
	t.OpenAmount += amount
	return nil
}

// OpenBill moves an occupied table with charges into billing state and
// returns the bill to settle. Calling it again while billing returns the
// same open bill.
func (r *Registry) OpenBill(_ context.Context, tableID int64) (*domain.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[tableID]
	if !ok {
		return nil, domain.ErrTableNotFound
	}
	if t.Status == domain.TableBilling {
		bill := *r.bills[tableID]
		return &bill, nil
	}
	if t.OpenAmount == 0 {
		return nil, domain.ErrNothingToBill
	}

	t.Status = domain.TableBilling
	bill := &domain.Bill{TableID: tableID, Amount: t.OpenAmount}
	r.bills[tableID] = bill

	out := *bill
	return &out, nil
}

// Settle records payment for an open bill. Card payments create a payment
// intent with the billing provider; cash settles immediately. Only the
// amount frozen at OpenBill time is settled: charges that land while the
// waiter collects payment stay on the table, which returns to occupied
// instead of available so they can be billed next.
func (r *Registry) Settle(ctx context.Context, tableID int64, method domain.PaymentMethod) (*domain.Bill, error) {
	r.mu.Lock()
	t, ok := r.tables[tableID]
	if !ok {
		r.mu.Unlock()
		return nil, domain.ErrTableNotFound
	}
	bill, open := r.bills[tableID]
	if !open {
		r.mu.Unlock()
		return nil, domain.ErrNoOpenBill
	}
	amount := bill.Amount
	r.mu.Unlock()

	settled := domain.Bill{TableID: tableID, Amount: amount, Method: method}

	switch method {
	case domain.PaymentCard:
		if r.payments == nil {
			return nil, domain.Unavailable("table.Settle", "Card payments are not configured")
		}
		// The provider call happens outside the lock; it is a network
		// round trip and must not stall the whole roster.
		pi, err := r.payments.CreatePaymentIntent(ctx, billing.CreatePaymentIntentParams{
			Amount:      amount,
			Currency:    r.currency,
			Description: fmt.Sprintf("Table %d bill", tableID),
			Metadata: map[string]string{
				"table_id": fmt.Sprintf("%d", tableID),
			},
			IdempotencyKey: fmt.Sprintf("table-%d-bill-%d", tableID, amount),
		})
		if err != nil {
			return nil, domain.WrapError(err, domain.EPAYMENT, "table.Settle", "Failed to create payment intent")
		}
		settled.PaymentIntentID = pi.ID
		settled.ClientSecret = pi.ClientSecret
	case domain.PaymentCash:
		// Nothing to do; the drawer is the source of truth.
	default:
		return nil, domain.Errorf(domain.EINVALID, "table.Settle", "Unknown payment method %q", method)
	}

	settled.Paid = true

	r.mu.Lock()
	defer r.mu.Unlock()

	// The lock was released around the provider call; another Settle may
	// have taken the bill in the meantime.
	if current, open := r.bills[tableID]; !open || current != bill {
		return nil, domain.ErrNoOpenBill
	}
	delete(r.bills, tableID)

	t.OpenAmount -= amount
	if t.OpenAmount > 0 {
		// Orders confirmed during payment collection stay owed; the
		// waiter opens a fresh bill for them.
		t.Status = domain.TableOccupied
	} else {
		t.Status = domain.TableAvailable
	}

	return &settled, nil
}
