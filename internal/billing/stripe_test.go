package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStripeProvider_RejectsBadKey(t *testing.T) {
	_, err := NewStripeProvider("pk_test_not_a_secret_key")
	assert.ErrorIs(t, err, ErrInvalidAPIKey)

	_, err = NewStripeProvider("")
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
}

func TestMockProvider_CreatePaymentIntent(t *testing.T) {
	mock := NewMockProvider()

	pi, err := mock.CreatePaymentIntent(context.Background(), CreatePaymentIntentParams{
		Amount:   235_200,
		Currency: "usd",
		Metadata: map[string]string{"table_id": "5"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pi.ID)
	assert.NotEmpty(t, pi.ClientSecret)
	assert.Equal(t, int64(235_200), pi.Amount)
	assert.Equal(t, "requires_payment_method", pi.Status)
	assert.Len(t, mock.CallLog, 1)
	assert.Contains(t, mock.PaymentIntents, pi.ID)
}
