package domain

import "context"

// Table domain errors.
var (
	ErrTableNotFound  = &Error{Code: ENOTFOUND, Message: "Table not found"}
	ErrTableOccupied  = &Error{Code: ECONFLICT, Message: "Table is already occupied"}
	ErrNoOpenBill     = &Error{Code: EINVALID, Message: "Table has no open bill"}
	ErrNothingToBill  = &Error{Code: EINVALID, Message: "Table has no unpaid orders"}
)

// TableStatus tracks the waiter-facing lifecycle of a table.
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableBilling   TableStatus = "billing"
)

// Table is one physical table in the dining room.
type Table struct {
	ID     int64       `json:"id"`
	Number string      `json:"number"`
	Seats  int         `json:"seats"`
	Status TableStatus `json:"status"`

	// OpenAmount is the total of confirmed, unpaid orders on this table.
	OpenAmount int64 `json:"open_amount"`
}

// PaymentMethod is how a bill was settled.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Bill is the waiter-facing settlement summary for a table.
type Bill struct {
	TableID int64 `json:"table_id"`
	Amount  int64 `json:"amount"`

	// PaymentIntentID is set for card payments awaiting confirmation.
	PaymentIntentID string `json:"payment_intent_id,omitempty"`

	// ClientSecret is forwarded to the card terminal for confirmation.
	ClientSecret string `json:"client_secret,omitempty"`

	Paid   bool          `json:"paid"`
	Method PaymentMethod `json:"method,omitempty"`
}

// TableService manages table occupancy and payment collection.
type TableService interface {
	// ListTables returns all tables ordered by number.
	ListTables(ctx context.Context) ([]Table, error)

	// Occupy marks an available table as occupied.
	Occupy(ctx context.Context, tableID int64) (*Table, error)

	// AddCharge records a confirmed order total against a table.
	AddCharge(ctx context.Context, tableID int64, amount int64) error

	// OpenBill moves an occupied table with charges into billing state and
	// returns the bill to settle.
	OpenBill(ctx context.Context, tableID int64) (*Bill, error)

	// Settle records payment for an open bill. Card payments create a
	// payment intent with the billing provider; cash settles immediately.
	// A settled table returns to available with a zero open amount.
	Settle(ctx context.Context, tableID int64, method PaymentMethod) (*Bill, error)
}
