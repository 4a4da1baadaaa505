package render

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects render duration, output size and failures.
type Metrics struct {
	duration prometheus.Histogram
	size     prometheus.Histogram
	failures prometheus.Counter
}

// NewMetrics registers the render collectors on reg under namespace.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Time from render start until the stream is fully ready",
			Buckets:   prometheus.DefBuckets,
		}),
		size: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "size_bytes",
			Help:      "Rendered document size in bytes",
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 10), // 1KB to 512KB
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "failures_total",
			Help:      "Total number of renders that finished with an error",
		}),
	}
}

func (m *Metrics) observe(d time.Duration, size int64, err error) {
	m.duration.Observe(d.Seconds())
	m.size.Observe(float64(size))
	if err != nil {
		m.failures.Inc()
	}
}
