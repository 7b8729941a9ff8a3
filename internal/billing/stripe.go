package billing

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripeProvider implements Provider using the Stripe Go SDK.
type StripeProvider struct {
	apiKey string
}

// NewStripeProvider creates a new Stripe billing provider.
// The API key must be a secret key (sk_test_... or sk_live_...).
func NewStripeProvider(apiKey string) (*StripeProvider, error) {
	if !strings.HasPrefix(apiKey, "sk_") {
		return nil, ErrInvalidAPIKey
	}
	stripe.Key = apiKey
	return &StripeProvider{apiKey: apiKey}, nil
}

// CreatePaymentIntent creates a Stripe payment intent for a table bill.
func (s *StripeProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	if params.Amount < 50 {
		return nil, ErrAmountTooSmall
	}

	piParams := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(params.Amount),
		Currency:    stripe.String(params.Currency),
		Description: stripe.String(params.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	piParams.Context = ctx
	for k, v := range params.Metadata {
		piParams.AddMetadata(k, v)
	}
	if params.IdempotencyKey != "" {
		piParams.IdempotencyKey = stripe.String(params.IdempotencyKey)
	}

	pi, err := paymentintent.New(piParams)
	if err != nil {
		return nil, wrapStripeError(err)
	}

	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}, nil
}
