package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics tracks checkout volume and cart activity.
type OrderMetrics struct {
	ordersCreated prometheus.Counter
	orderTotals   prometheus.Histogram
	cartMutations *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders produced by checkout.",
	})
	orderTotals := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_total_amount",
		Help:    "Distribution of order totals, fees included.",
		Buckets: []float64{10, 20, 35, 50, 75, 100, 150},
	})
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	reg.MustRegister(ordersCreated, orderTotals, cartMutations)
	return &OrderMetrics{
		ordersCreated: ordersCreated,
		orderTotals:   orderTotals,
		cartMutations: cartMutations,
	}
}

// IncOrderCreated records one completed checkout with its total.
func (o *OrderMetrics) IncOrderCreated(total float64) {
	if o == nil || o.ordersCreated == nil {
		return
	}
	o.ordersCreated.Inc()
	o.orderTotals.Observe(total)
}

// IncCartMutation records a cart operation (add, remove, clear).
func (o *OrderMetrics) IncCartMutation(op string) {
	if o == nil || o.cartMutations == nil {
		return
	}
	o.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}
