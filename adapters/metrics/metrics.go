// Package metrics provides Prometheus metrics collection for RotaVan.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for RotaVan.
type Collector struct {
	// HTTP metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Ledger metrics
	StatusUpdates prometheus.Counter
	StudentsTotal prometheus.Gauge

	// Rollover metrics
	RolloverRuns *prometheus.CounterVec
}

// New creates a new metrics collector with all metrics registered on
// the default registry.
func New() *Collector {
	return NewWithRegistry(nil)
}

// StatusUpdated counts one payment status upsert.
func (c *Collector) StatusUpdated() {
	c.StatusUpdates.Inc()
}

// RolloverRan counts one rollover run with its result label.
func (c *Collector) RolloverRan(result string) {
	c.RolloverRuns.WithLabelValues(result).Inc()
}

// SetStudentCount records the active student gauge.
func (c *Collector) SetStudentCount(n int) {
	c.StudentsTotal.Set(float64(n))
}

// NewWithRegistry registers metrics on the given registry. A nil
// registry uses promauto's default. Tests pass their own registry to
// avoid duplicate registration across cases.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	if reg == nil {
		factory = promauto.With(prometheus.DefaultRegisterer)
	}

	return &Collector{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rotavan",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rotavan",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "path"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "rotavan",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		StatusUpdates: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "rotavan",
				Name:      "ledger_status_updates_total",
				Help:      "Total number of payment status upserts",
			},
		),
		StudentsTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "rotavan",
				Name:      "students_total",
				Help:      "Number of active students",
			},
		),
		RolloverRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rotavan",
				Name:      "rollover_runs_total",
				Help:      "Due-date rollover runs by result",
			},
			[]string{"result"},
		),
	}
}
