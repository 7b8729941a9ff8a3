package domain

import (
	"context"
	"time"
)

// Order domain errors.
var (
	ErrMissingTable = &Error{Code: EINVALID, Message: "A valid table is required before submitting an order"}
	ErrOrderBackend = &Error{Code: EUNAVAILABLE, Message: "Order service is unavailable"}
)

// DiningMode describes where the order will be consumed.
type DiningMode string

const (
	DiningInRestaurant DiningMode = "in-restaurant"
	DiningTakeaway     DiningMode = "takeaway"
	DiningDelivery     DiningMode = "delivery"
)

// OrderRequest is the order-creation payload sent to the kitchen backend.
// The field names are part of the backend contract; do not rename.
type OrderRequest struct {
	TableID       int64              `json:"table_id" validate:"required,gt=0"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerNotes string             `json:"customer_notes"`
	DiningMode    DiningMode         `json:"dining_mode" validate:"required,oneof=in-restaurant takeaway delivery"`
}

// OrderItemRequest is one order line on the wire.
type OrderItemRequest struct {
	MenuItemID int64               `json:"menu_item_id" validate:"required,gt=0"`
	Quantity   int                 `json:"quantity" validate:"required,gt=0"`
	Modifiers  []OrderItemModifier `json:"modifiers"`
	Notes      string              `json:"notes"`
}

// OrderItemModifier is a flattened (group, option, price delta) triple
// derived from a cart line's selections.
type OrderItemModifier struct {
	ModifierGroupID  string `json:"modifier_group_id"`
	ModifierOptionID string `json:"modifier_option_id"`
	AdditionalPrice  int64  `json:"additional_price"`
}

// OrderConfirmation is the backend's response to a successful submission.
// Beyond displaying it, this service treats the payload as opaque.
type OrderConfirmation struct {
	ID               int64             `json:"id"`
	OrderNumber      string            `json:"order_number"`
	Status           string            `json:"status"`
	TotalAmount      int64             `json:"total_amount"`
	Items            []OrderItemStatus `json:"items"`
	EstimatedReadyAt time.Time         `json:"estimated_ready_time"`
}

// OrderItemStatus reports per-item acceptance from the kitchen.
type OrderItemStatus struct {
	MenuItemID int64  `json:"menu_item_id"`
	Status     string `json:"status"`
}

// OrderService turns a session's cart into a backend order.
type OrderService interface {
	// Submit builds the order request from the session's cart and sends it
	// to the kitchen backend. The cart is cleared only after a definitive
	// success response; on any failure it is left untouched so the
	// customer can retry without re-entering items.
	Submit(ctx context.Context, sessionID string, tableID int64, customerNotes string) (*OrderConfirmation, error)
}
