package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	WindowSampleCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "cyclicdeque",
			Subsystem: "window",
			Name:      "sample_count",
			Help:      "The number of live samples held by the window",
		}, []string{"name"})
	WindowExpiredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyclicdeque",
			Subsystem: "window",
			Name:      "expired_total",
			Help:      "The total number of samples dropped after falling out of the span",
		}, []string{"name"})
	WindowOutOfOrderTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyclicdeque",
			Subsystem: "window",
			Name:      "out_of_order_total",
			Help:      "The total number of samples rejected for arriving out of order",
		}, []string{"name"})
)

// InitWindowMetrics registers all metrics used by the extremum windows.
func InitWindowMetrics(registry *prometheus.Registry) {
	registry.MustRegister(WindowSampleCount)
	registry.MustRegister(WindowExpiredTotal)
	registry.MustRegister(WindowOutOfOrderTotal)
}
