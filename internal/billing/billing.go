package billing

import (
	"context"
	"time"
)

// Provider defines the interface for card payment processing.
// Implementations can use Stripe, Adyen, etc. Cash settlements never
// touch a Provider.
type Provider interface {
	// CreatePaymentIntent creates a payment intent for a table bill.
	// Returns the intent with a client_secret for terminal confirmation.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)
}

// CreatePaymentIntentParams contains parameters for creating a payment intent.
type CreatePaymentIntentParams struct {
	// Amount in smallest currency unit
	Amount int64

	// Currency code (ISO 4217) - e.g., "usd", "vnd"
	Currency string

	// Description appears on the customer's statement
	Description string

	// Metadata for filtering and reporting (always include table_id)
	Metadata map[string]string

	// IdempotencyKey prevents duplicate payment intents.
	// Typically the open bill's identifier.
	IdempotencyKey string
}

// PaymentIntent represents a provider payment intent.
type PaymentIntent struct {
	// ID is the provider payment intent ID (pi_...)
	ID string

	// ClientSecret is used by the payment terminal to confirm payment
	ClientSecret string

	// Amount in smallest currency unit
	Amount int64

	// Currency code
	Currency string

	// Status: requires_payment_method, requires_confirmation, succeeded, etc.
	Status string

	// Metadata passed during creation
	Metadata map[string]string

	// CreatedAt is when the payment intent was created
	CreatedAt time.Time
}
