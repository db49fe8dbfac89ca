package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	barsIngested *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	scansTotal   *prometheus.CounterVec
	scanSeconds  *prometheus.HistogramVec
	matchesFound *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

var (
	recorderOnce sync.Once
	recorder     *Recorder
)

// New returns the process-wide recorder. Collectors register on the default
// registry exactly once; every call after the first returns the same
// instance, so DI providers and standalone tools can both call New freely.
func New() *Recorder {
	recorderOnce.Do(func() {
		recorder = newRecorder()
	})
	return recorder
}

func newRecorder() *Recorder {
	return &Recorder{
		barsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bumpslide_bars_ingested_total",
				Help: "Total number of bars written to a backend",
			},
			[]string{"backend"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bumpslide_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		scansTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bumpslide_scans_total",
				Help: "Total number of pattern scans by outcome",
			},
			[]string{"outcome"},
		),
		scanSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bumpslide_scan_duration_seconds",
				Help:    "Duration of pattern scans in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		matchesFound: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bumpslide_matches_found_total",
				Help: "Total number of matches reported per symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bumpslide_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordBarsIngested records bars written to a backend.
func (r *Recorder) RecordBarsIngested(backend string, count int) {
	r.barsIngested.WithLabelValues(backend).Add(float64(count))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordScan records one finished scan and its duration.
func (r *Recorder) RecordScan(outcome string, seconds float64) {
	r.scansTotal.WithLabelValues(outcome).Inc()
	r.scanSeconds.WithLabelValues(outcome).Observe(seconds)
}

// RecordMatches records how many matches a scan reported.
func (r *Recorder) RecordMatches(symbol string, count int) {
	r.matchesFound.WithLabelValues(symbol).Add(float64(count))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
