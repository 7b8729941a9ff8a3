package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// SubjectOrderCreated is the NATS subject for order confirmations.
const SubjectOrderCreated = "mesa.orders.created"

// NATSPublisher publishes order events to a NATS server.
type NATSPublisher struct {
	conn *nats.Conn
}

// Compile-time check that NATSPublisher implements Publisher.
var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher connects to the given NATS URL.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("mesa-orders"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// PublishOrderCreated emits the event on the order-created subject.
func (p *NATSPublisher) PublishOrderCreated(_ context.Context, event OrderCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	return p.conn.Publish(SubjectOrderCreated, data)
}

// Close flushes pending messages and drops the connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Flush()
		p.conn.Close()
	}
}
