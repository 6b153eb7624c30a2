package metrics

import "github.com/prometheus/client_golang/prometheus"

// InitMetrics registers every metric of this module with the registry.
// Embedding applications that already run their own registry call this once
// at startup; the individual Init functions remain available for picking a
// subset.
func InitMetrics(registry *prometheus.Registry) {
	InitDequeMetrics(registry)
	InitWindowMetrics(registry)
}
