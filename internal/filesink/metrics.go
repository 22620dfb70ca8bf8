package filesink

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK       = "ok"
	resultDiverted = "diverted"
	resultDropped  = "dropped"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for the file sink.
type Metrics struct {
	WritesTotal    *prometheus.CounterVec
	RotationsTotal prometheus.Counter
}

// NewMetrics returns the process-wide file sink metrics, registering them
// with the default registry on first use.
//
// Metrics:
//   - logfan_file_writes_total{result} - records by outcome: ok, diverted, dropped
//   - logfan_file_rotations_total - current files moved to a dated backup
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			WritesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "logfan_file_writes_total",
					Help: "Total number of file sink writes by outcome",
				},
				[]string{"result"},
			),
			RotationsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "logfan_file_rotations_total",
					Help: "Total number of day-boundary log file rotations",
				},
			),
		}
	})
	return globalMetrics
}
