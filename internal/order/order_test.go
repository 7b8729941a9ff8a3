package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesa-pos/mesa/internal/cart"
	"github.com/mesa-pos/mesa/internal/domain"
	"github.com/mesa-pos/mesa/internal/events"
	"github.com/mesa-pos/mesa/internal/menu"
	"github.com/mesa-pos/mesa/internal/order"
	"github.com/mesa-pos/mesa/internal/pricing"
	"github.com/mesa-pos/mesa/internal/table"
	"github.com/mesa-pos/mesa/internal/tax"
)

// fakeSubmitter records the last request and returns a canned confirmation
// or error.
type fakeSubmitter struct {
	lastRequest  *domain.OrderRequest
	confirmation *domain.OrderConfirmation
	err          error
	calls        int
}

func (f *fakeSubmitter) CreateOrder(_ context.Context, req *domain.OrderRequest) (*domain.OrderConfirmation, error) {
	f.calls++
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.confirmation, nil
}

// capturePublisher stores published events.
type capturePublisher struct {
	events []events.OrderCreatedEvent
}

func (p *capturePublisher) PublishOrderCreated(_ context.Context, e events.OrderCreatedEvent) error {
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) Close() {}

type fixture struct {
	cart      *cart.Service
	tables    *table.Registry
	submitter *fakeSubmitter
	publisher *capturePublisher
	service   *order.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	menuSvc := menu.NewStaticService(menu.DefaultMenu()...)
	cartSvc := cart.NewService(menuSvc, tax.NewPercentageCalculator(0.08), pricing.NewVoucherCatalog(pricing.DefaultVouchers()...), 0)
	tables := table.NewRegistry(nil, "usd", table.DefaultTables())
	submitter := &fakeSubmitter{
		confirmation: &domain.OrderConfirmation{
			ID:          1001,
			OrderNumber: "ORD-1001",
			Status:      "confirmed",
			TotalAmount: 259_200,
		},
	}
	publisher := &capturePublisher{}

	return &fixture{
		cart:      cartSvc,
		tables:    tables,
		submitter: submitter,
		publisher: publisher,
		service:   order.NewService(cartSvc, tables, submitter, publisher, nil, nil, nil),
	}
}

func seedCart(t *testing.T, f *fixture, sessionID string) {
	t.Helper()

	// Two large Pho Bo with extra beef: (100000 + 20000 + 30000) * 2.
	_, err := f.cart.AddItem(context.Background(), sessionID, 1, 2, domain.SelectedModifiers{
		"size":   {"large"},
		"extras": {"beef"},
	}, "less spicy")
	require.NoError(t, err)
}

func TestSubmit_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedCart(t, f, "sess-1")

	confirmation, err := f.service.Submit(ctx, "sess-1", 5, "birthday dinner")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1001", confirmation.OrderNumber)

	// Wire shape sent to the backend.
	req := f.submitter.lastRequest
	require.NotNil(t, req)
	assert.Equal(t, int64(5), req.TableID)
	assert.Equal(t, domain.DiningInRestaurant, req.DiningMode)
	assert.Equal(t, "birthday dinner", req.CustomerNotes)
	require.Len(t, req.Items, 1)

	item := req.Items[0]
	assert.Equal(t, int64(1), item.MenuItemID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "less spicy", item.Notes)
	require.Len(t, item.Modifiers, 2)
	assert.Equal(t, domain.OrderItemModifier{ModifierGroupID: "extras", ModifierOptionID: "beef", AdditionalPrice: 30_000}, item.Modifiers[0])
	assert.Equal(t, domain.OrderItemModifier{ModifierGroupID: "size", ModifierOptionID: "large", AdditionalPrice: 20_000}, item.Modifiers[1])

	// Cart cleared only on success.
	summary, err := f.cart.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, summary.Lines)

	// Table charged with the confirmed total.
	tables, err := f.tables.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(259_200), tables[4].OpenAmount)
	assert.Equal(t, domain.TableOccupied, tables[4].Status)

	// Event published.
	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, int64(1001), event.OrderID)
	assert.Equal(t, int64(5), event.TableID)
	assert.Equal(t, 2, event.ItemCount)
	assert.NotEmpty(t, event.EventID)
}

func TestSubmit_MissingTableFailsLocally(t *testing.T) {
	f := newFixture(t)
	seedCart(t, f, "sess-1")

	_, err := f.service.Submit(context.Background(), "sess-1", 0, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingTable)
	assert.Zero(t, f.submitter.calls, "invalid table must never reach the backend")

	// Cart untouched.
	summary, _ := f.cart.GetCart(context.Background(), "sess-1")
	assert.Len(t, summary.Lines, 1)
}

func TestSubmit_EmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Submit(context.Background(), "sess-1", 5, "")
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
	assert.Zero(t, f.submitter.calls)
}

func TestSubmit_BackendFailureLeavesCartIntact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedCart(t, f, "sess-1")

	f.submitter.err = domain.ErrOrderBackend

	_, err := f.service.Submit(ctx, "sess-1", 5, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOrderBackend)

	summary, _ := f.cart.GetCart(ctx, "sess-1")
	assert.Len(t, summary.Lines, 1, "a failed submission must not clear the cart")

	tables, _ := f.tables.ListTables(ctx)
	assert.Zero(t, tables[4].OpenAmount)
	assert.Empty(t, f.publisher.events)

	// Retry after the backend recovers.
	f.submitter.err = nil
	_, err = f.service.Submit(ctx, "sess-1", 5, "")
	require.NoError(t, err)
}
