package events

import (
	"context"
	"time"
)

// OrderCreatedEvent is published after the kitchen backend confirms an
// order. The waiter task feed subscribes to these to learn about new orders
// without polling.
type OrderCreatedEvent struct {
	EventID     string    `json:"event_id"`
	OrderID     int64     `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	TableID     int64     `json:"table_id"`
	TotalAmount int64     `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	DiningMode  string    `json:"dining_mode"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher emits order lifecycle events. Publishing is best-effort: a
// failed publish is logged by the caller but never fails the order.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error
	Close()
}

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

// PublishOrderCreated discards the event.
func (NoopPublisher) PublishOrderCreated(context.Context, OrderCreatedEvent) error { return nil }

// Close is a no-op.
func (NoopPublisher) Close() {}
