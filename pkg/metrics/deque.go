package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DequeLength = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "cyclicdeque",
			Subsystem: "deque",
			Name:      "length",
		}, []string{"name"})
	DequeCapacity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "cyclicdeque",
			Subsystem: "deque",
			Name:      "capacity",
		}, []string{"name"})
	DequeGrowthCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "cyclicdeque",
			Subsystem: "deque",
			Name:      "growth_count",
			Help:      "The number of buffer reallocations since construction",
		}, []string{"name"})
)

// Stats is the read-only view a deque exposes to observers. *deque.CyclicDeque
// satisfies it for every item type.
type Stats interface {
	Length() int
	Capacity() int
	GrowthCount() int
}

// ReportDeque publishes one deque's counters under the given name. Callers
// own the deque's locking; ReportDeque only reads the accessors.
func ReportDeque(name string, s Stats) {
	DequeLength.WithLabelValues(name).Set(float64(s.Length()))
	DequeCapacity.WithLabelValues(name).Set(float64(s.Capacity()))
	DequeGrowthCount.WithLabelValues(name).Set(float64(s.GrowthCount()))
}

// InitDequeMetrics registers all metrics used by the deque.
func InitDequeMetrics(registry *prometheus.Registry) {
	registry.MustRegister(DequeLength)
	registry.MustRegister(DequeCapacity)
	registry.MustRegister(DequeGrowthCount)
}
