package telemetry

import (
	"sort"
	"sync"
	"time"
)

// DashboardStats accumulates in-process counters behind the business
// analytics dashboard. It tracks only the current service run; historical
// reporting belongs to the backend, not this layer.
type DashboardStats struct {
	mu sync.Mutex

	ordersSubmitted int
	ordersFailed    int
	revenue         int64
	itemQuantities  map[string]int
	startedAt       time.Time
}

// DashboardSummary is the read model returned to the dashboard view.
type DashboardSummary struct {
	OrdersSubmitted int        `json:"orders_submitted"`
	OrdersFailed    int        `json:"orders_failed"`
	Revenue         int64      `json:"revenue"`
	AverageOrder    int64      `json:"average_order"`
	TopItems        []TopItem  `json:"top_items"`
	Since           time.Time  `json:"since"`
}

// TopItem is one entry in the best-sellers list.
type TopItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// NewDashboardStats creates an empty stats accumulator.
func NewDashboardStats() *DashboardStats {
	return &DashboardStats{
		itemQuantities: make(map[string]int),
		startedAt:      time.Now(),
	}
}

// RecordOrder tallies a confirmed order.
func (s *DashboardStats) RecordOrder(total int64, itemsByName map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ordersSubmitted++
	s.revenue += total
	for name, qty := range itemsByName {
		s.itemQuantities[name] += qty
	}
}

// RecordFailure tallies a failed submission.
func (s *DashboardStats) RecordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ordersFailed++
}

// Summary returns a snapshot with the top five items by quantity.
func (s *DashboardStats) Summary() DashboardSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	top := make([]TopItem, 0, len(s.itemQuantities))
	for name, qty := range s.itemQuantities {
		top = append(top, TopItem{Name: name, Quantity: qty})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > 5 {
		top = top[:5]
	}

	var average int64
	if s.ordersSubmitted > 0 {
		average = s.revenue / int64(s.ordersSubmitted)
	}

	return DashboardSummary{
		OrdersSubmitted: s.ordersSubmitted,
		OrdersFailed:    s.ordersFailed,
		Revenue:         s.revenue,
		AverageOrder:    average,
		TopItems:        top,
		Since:           s.startedAt,
	}
}
