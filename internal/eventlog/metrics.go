package eventlog

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for event source reconciliation.
type Metrics struct {
	ReconciliationsTotal *prometheus.CounterVec
}

// NewMetrics returns the process-wide reconciliation metrics.
//
// Metrics:
//   - logfan_event_source_reconciliations_total{state} - EnsureSource outcomes
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			ReconciliationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "logfan_event_source_reconciliations_total",
					Help: "Total number of event source reconciliations by resulting state",
				},
				[]string{"state"},
			),
		}
	})
	return globalMetrics
}
