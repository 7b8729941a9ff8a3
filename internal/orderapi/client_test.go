package orderapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mesa-pos/mesa/internal/domain"
	"github.com/mesa-pos/mesa/internal/orderapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() *domain.OrderRequest {
	return &domain.OrderRequest{
		TableID:    5,
		DiningMode: domain.DiningInRestaurant,
		Items: []domain.OrderItemRequest{
			{
				MenuItemID: 1,
				Quantity:   2,
				Modifiers: []domain.OrderItemModifier{
					{ModifierGroupID: "size", ModifierOptionID: "large", AdditionalPrice: 20_000},
				},
			},
		},
	}
}

func TestCreateOrder_Success(t *testing.T) {
	var received domain.OrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.OrderConfirmation{
			ID:          1001,
			OrderNumber: "ORD-1001",
			Status:      "confirmed",
			TotalAmount: 259_200,
		})
	}))
	defer srv.Close()

	client := orderapi.NewClient(orderapi.Config{BaseURL: srv.URL})
	confirmation, err := client.CreateOrder(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1001), confirmation.ID)
	assert.Equal(t, "ORD-1001", confirmation.OrderNumber)

	// Wire shape must match the backend contract exactly.
	assert.Equal(t, int64(5), received.TableID)
	assert.Equal(t, domain.DiningInRestaurant, received.DiningMode)
	require.Len(t, received.Items, 1)
	assert.Equal(t, "size", received.Items[0].Modifiers[0].ModifierGroupID)
	assert.Equal(t, int64(20_000), received.Items[0].Modifiers[0].AdditionalPrice)
}

func TestCreateOrder_BackendMessageSurfacedUnmodified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "table 5 has an unpaid bill"})
	}))
	defer srv.Close()

	client := orderapi.NewClient(orderapi.Config{BaseURL: srv.URL})
	_, err := client.CreateOrder(context.Background(), testRequest())

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Equal(t, "table 5 has an unpaid bill", domain.ErrorMessage(err))
}

func TestCreateOrder_ServerErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := orderapi.NewClient(orderapi.Config{BaseURL: srv.URL})
	_, err := client.CreateOrder(context.Background(), testRequest())

	require.Error(t, err)
	assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
}

func TestCreateOrder_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := orderapi.NewClient(orderapi.Config{BaseURL: srv.URL})

	// Trip the breaker: >= 3 requests with a failure ratio >= 60%.
	for i := 0; i < 5; i++ {
		_, _ = client.CreateOrder(context.Background(), testRequest())
	}

	hitsBefore := hits
	_, err := client.CreateOrder(context.Background(), testRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOrderBackend)
	assert.Equal(t, hitsBefore, hits, "an open breaker must not reach the backend")
}
