package table_test

import (
	"context"
	"testing"

	"github.com/mesa-pos/mesa/internal/billing"
	"github.com/mesa-pos/mesa/internal/domain"
	"github.com/mesa-pos/mesa/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) (*table.Registry, *billing.MockProvider) {
	t.Helper()
	mock := billing.NewMockProvider()
	return table.NewRegistry(mock, "usd", table.DefaultTables()), mock
}

func TestListTables_OrderedByNumber(t *testing.T) {
	reg, _ := newRegistry(t)

	tables, err := reg.ListTables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 12)
	assert.Equal(t, "T01", tables[0].Number)
	assert.Equal(t, "T12", tables[11].Number)
	for _, tbl := range tables {
		assert.Equal(t, domain.TableAvailable, tbl.Status)
		assert.Zero(t, tbl.OpenAmount)
	}
}

func TestOccupy(t *testing.T) {
	reg, _ := newRegistry(t)
	ctx := context.Background()

	tbl, err := reg.Occupy(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.TableOccupied, tbl.Status)

	_, err = reg.Occupy(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrTableOccupied)

	_, err = reg.Occupy(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

func TestAddCharge_OccupiesAvailableTable(t *testing.T) {
	reg, _ := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.AddCharge(ctx, 5, 235_200))
	require.NoError(t, reg.AddCharge(ctx, 5, 67_800))

	tables, err := reg.ListTables(ctx)
	require.NoError(t, err)
	tbl := tables[4]
	assert.Equal(t, "T05", tbl.Number)
	assert.Equal(t, domain.TableOccupied, tbl.Status)
	assert.Equal(t, int64(303_000), tbl.OpenAmount)

	assert.ErrorIs(t, reg.AddCharge(ctx, 99, 100), domain.ErrTableNotFound)
}

func TestOpenBill(t *testing.T) {
	reg, _ := newRegistry(t)
	ctx := context.Background()

	_, err := reg.OpenBill(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNothingToBill)

	require.NoError(t, reg.AddCharge(ctx, 2, 150_000))

	bill, err := reg.OpenBill(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(150_000), bill.Amount)
	assert.False(t, bill.Paid)

	// Reopening while billing returns the same bill.
	again, err := reg.OpenBill(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, bill.Amount, again.Amount)

	tables, _ := reg.ListTables(ctx)
	assert.Equal(t, domain.TableBilling, tables[1].Status)
}

func TestSettle_Cash(t *testing.T) {
	reg, mock := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.AddCharge(ctx, 7, 120_000))
	_, err := reg.OpenBill(ctx, 7)
	require.NoError(t, err)

	bill, err := reg.Settle(ctx, 7, domain.PaymentCash)
	require.NoError(t, err)
	assert.True(t, bill.Paid)
	assert.Equal(t, domain.PaymentCash, bill.Method)
	assert.Empty(t, bill.PaymentIntentID)
	assert.Empty(t, mock.CallLog, "cash must not touch the payment provider")

	tables, _ := reg.ListTables(ctx)
	assert.Equal(t, domain.TableAvailable, tables[6].Status)
	assert.Zero(t, tables[6].OpenAmount)
}

func TestSettle_CardCreatesPaymentIntent(t *testing.T) {
	reg, mock := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.AddCharge(ctx, 4, 303_000))
	_, err := reg.OpenBill(ctx, 4)
	require.NoError(t, err)

	bill, err := reg.Settle(ctx, 4, domain.PaymentCard)
	require.NoError(t, err)
	assert.True(t, bill.Paid)
	assert.NotEmpty(t, bill.PaymentIntentID)
	assert.NotEmpty(t, bill.ClientSecret)
	require.Len(t, mock.CallLog, 1)

	pi := mock.PaymentIntents[bill.PaymentIntentID]
	require.NotNil(t, pi)
	assert.Equal(t, int64(303_000), pi.Amount)
	assert.Equal(t, "4", pi.Metadata["table_id"])
}

func TestSettle_ChargeDuringBillingSurvives(t *testing.T) {
	reg, _ := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.AddCharge(ctx, 1, 100_000))
	opened, err := reg.OpenBill(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), opened.Amount)

	// An order confirmed while the waiter collects payment.
	require.NoError(t, reg.AddCharge(ctx, 1, 50_000))

	bill, err := reg.Settle(ctx, 1, domain.PaymentCash)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), bill.Amount, "settles the opened amount only")

	// The late charge is still owed and the table stays occupied.
	tables, _ := reg.ListTables(ctx)
	assert.Equal(t, domain.TableOccupied, tables[0].Status)
	assert.Equal(t, int64(50_000), tables[0].OpenAmount)

	next, err := reg.OpenBill(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), next.Amount)

	_, err = reg.Settle(ctx, 1, domain.PaymentCash)
	require.NoError(t, err)
	tables, _ = reg.ListTables(ctx)
	assert.Equal(t, domain.TableAvailable, tables[0].Status)
	assert.Zero(t, tables[0].OpenAmount)
}

func TestSettle_BillTakenDuringProviderCall(t *testing.T) {
	reg, mock := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.AddCharge(ctx, 9, 80_000))
	_, err := reg.OpenBill(ctx, 9)
	require.NoError(t, err)

	// A cash settlement lands while the card settlement is out at the
	// provider; only one of the two may report the bill as paid.
	var cashBill *domain.Bill
	mock.CreatePaymentIntentFunc = func(_ context.Context, params billing.CreatePaymentIntentParams) (*billing.PaymentIntent, error) {
		cashBill, err = reg.Settle(ctx, 9, domain.PaymentCash)
		require.NoError(t, err)
		return &billing.PaymentIntent{ID: "pi_race", ClientSecret: "secret", Amount: params.Amount}, nil
	}

	_, err = reg.Settle(ctx, 9, domain.PaymentCard)
	assert.ErrorIs(t, err, domain.ErrNoOpenBill)
	require.NotNil(t, cashBill)
	assert.True(t, cashBill.Paid)

	// The single 80,000 bill was paid exactly once.
	tables, _ := reg.ListTables(ctx)
	assert.Equal(t, domain.TableAvailable, tables[8].Status)
	assert.Zero(t, tables[8].OpenAmount)
}

func TestSettle_RequiresOpenBill(t *testing.T) {
	reg, _ := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.AddCharge(ctx, 6, 50_000))

	_, err := reg.Settle(ctx, 6, domain.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrNoOpenBill)
}
