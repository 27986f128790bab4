// Package metrics exposes prometheus instruments for the invoice
// pipeline.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	BuildErrorReasonNotFound = "not_found"
	BuildErrorReasonConflict = "number_conflict"
	BuildErrorReasonDB       = "db"
	BuildErrorReasonUnknown  = "unknown"
)

// PipelineMetrics captures invoice build throughput and health.
type PipelineMetrics struct {
	invoicesBuilt    *prometheus.CounterVec
	buildErrors      *prometheus.CounterVec
	numberCollisions prometheus.Counter
	buildDuration    *prometheus.HistogramVec
}

var (
	pipelineMetricsOnce sync.Once
	pipelineMetrics     *PipelineMetrics
)

// Pipeline returns the singleton pipeline metrics registry.
func Pipeline() *PipelineMetrics {
	pipelineMetricsOnce.Do(func() {
		pipelineMetrics = newPipelineMetrics(prometheus.DefaultRegisterer)
	})
	return pipelineMetrics
}

// ResetPipelineMetricsForTest resets the singleton for tests.
func ResetPipelineMetricsForTest() {
	pipelineMetricsOnce = sync.Once{}
	pipelineMetrics = nil
}

func newPipelineMetrics(registerer prometheus.Registerer) *PipelineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	invoicesBuilt := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invoicing_invoices_built_total",
		Help: "Invoices built, by selected format.",
	}, []string{"format"})
	buildErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invoicing_build_errors_total",
		Help: "Invoice build failures by low-cardinality reason.",
	}, []string{"reason"})
	numberCollisions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "invoicing_number_collisions_total",
		Help: "Invoice number unique-constraint collisions that triggered a retry.",
	})
	buildDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "invoicing_build_duration_seconds",
		Help:    "Invoice data build latency including the parallel fetch.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"format"})

	registerer.MustRegister(invoicesBuilt, buildErrors, numberCollisions, buildDuration)

	return &PipelineMetrics{
		invoicesBuilt:    invoicesBuilt,
		buildErrors:      buildErrors,
		numberCollisions: numberCollisions,
		buildDuration:    buildDuration,
	}
}

// IncInvoiceBuilt increments the built counter for a format.
func (m *PipelineMetrics) IncInvoiceBuilt(format string) {
	if m == nil || m.invoicesBuilt == nil {
		return
	}
	m.invoicesBuilt.WithLabelValues(format).Inc()
}

// IncBuildError increments the failure counter for a reason.
func (m *PipelineMetrics) IncBuildError(reason string) {
	if m == nil || m.buildErrors == nil {
		return
	}
	m.buildErrors.WithLabelValues(reason).Inc()
}

// IncNumberCollision counts one invoice-number collision retry.
func (m *PipelineMetrics) IncNumberCollision() {
	if m == nil || m.numberCollisions == nil {
		return
	}
	m.numberCollisions.Inc()
}

// ObserveBuildDuration records build latency for a format.
func (m *PipelineMetrics) ObserveBuildDuration(format string, duration time.Duration) {
	if m == nil || m.buildDuration == nil {
		return
	}
	m.buildDuration.WithLabelValues(format).Observe(duration.Seconds())
}
