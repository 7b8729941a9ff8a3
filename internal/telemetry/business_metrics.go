package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Cart funnel
	CartItemsAdded      *prometheus.CounterVec
	CartLinesRemoved    prometheus.Counter
	VouchersApplied     *prometheus.CounterVec
	VouchersRejected    *prometheus.CounterVec

	// Orders
	OrdersSubmitted prometheus.Counter
	OrdersFailed    *prometheus.CounterVec
	OrderValue      prometheus.Histogram
	OrderItemCount  prometheus.Histogram

	// Tables
	BillsSettled *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers all business metrics.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "mesa"
	}

	subsystem := "business"

	return &BusinessMetrics{
		CartItemsAdded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_items_added_total",
			Help:      "Items added to carts, labeled by menu category",
		}, []string{"category"}),

		CartLinesRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_lines_removed_total",
			Help:      "Cart lines removed by customers",
		}),

		VouchersApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "vouchers_applied_total",
			Help:      "Successful voucher applications by code",
		}, []string{"code"}),

		VouchersRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "vouchers_rejected_total",
			Help:      "Rejected voucher applications by reason",
		}, []string{"reason"}),

		OrdersSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders_submitted_total",
			Help:      "Orders confirmed by the kitchen backend",
		}),

		OrdersFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders_failed_total",
			Help:      "Order submissions that failed, by error code",
		}, []string{"code"}),

		OrderValue: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_value",
			Help:      "Confirmed order grand totals in minor currency units",
			Buckets:   prometheus.ExponentialBuckets(10_000, 2.5, 10),
		}),

		OrderItemCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_item_count",
			Help:      "Number of items per confirmed order",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),

		BillsSettled: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bills_settled_total",
			Help:      "Table bills settled, by payment method",
		}, []string{"method"}),
	}
}
