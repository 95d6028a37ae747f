package metrics

import "github.com/prometheus/client_golang/prometheus"

// OrderMetrics counts committed order aggregate writes.
type OrderMetrics struct {
	orders *prometheus.CounterVec
	items  prometheus.Counter
}

// NewOrderMetrics registers the order write counters on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_written_total",
		Help: "Committed order writes by operation.",
	}, []string{"op"})
	items := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_items_written_total",
		Help: "Order items persisted by committed writes.",
	})
	reg.MustRegister(orders, items)
	return &OrderMetrics{orders: orders, items: items}
}

// OrderWritten records a committed write of op touching items order items.
func (m *OrderMetrics) OrderWritten(op string, items int) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues(normalizeLabel(op)).Inc()
	if items > 0 {
		m.items.Add(float64(items))
	}
}
