package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ScanLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bumpslide",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of API endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ScanErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bumpslide",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by API endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(ScanLatency, ScanErrors)
	})
}
