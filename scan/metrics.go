// SPDX-License-Identifier: MIT
package scan

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "scanstat"

	statusOK       = "ok"
	statusInvalid  = "invalid"
	statusCanceled = "canceled"
)

// Metrics holds the Prometheus collectors updated by Scan.
type Metrics struct {
	scans      *prometheus.CounterVec
	duration   prometheus.Histogram
	replicates prometheus.Counter
	windows    prometheus.Counter
	degenerate prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		scans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "scans_total",
				Help:      "Total number of Scan calls by outcome",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "scan_duration_seconds",
			Help:      "Wall time of Scan calls in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
		}),
		replicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "replicates_total",
			Help:      "Total number of Monte Carlo replicates evaluated",
		}),
		windows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "windows_evaluated_total",
			Help:      "Total number of (zone, duration) windows scored",
		}),
		degenerate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "windows_degenerate_total",
			Help:      "Total number of windows skipped for an empty inside or outside baseline",
		}),
	}

	for _, c := range []prometheus.Collector{m.scans, m.duration, m.replicates, m.windows, m.degenerate} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register scan metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) observe(status string, elapsed time.Duration, st Stats) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(status).Inc()
	m.duration.Observe(elapsed.Seconds())
	m.replicates.Add(float64(st.Replicates))
	m.windows.Add(float64(st.Windows))
	m.degenerate.Add(float64(st.Degenerate))
}
