package dispatcher

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for dispatched entries.
type Metrics struct {
	EntriesTotal *prometheus.CounterVec
}

// NewMetrics returns the process-wide dispatcher metrics.
//
// Metrics:
//   - logfan_entries_total{level} - log calls by severity, before filtering
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			EntriesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "logfan_entries_total",
					Help: "Total number of log calls by severity",
				},
				[]string{"level"},
			),
		}
	})
	return globalMetrics
}
