// Package stats counts record conversions. Collectors are injected into the
// driver and the CLI rather than kept in process-wide state.
package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector receives conversion events.
type Collector interface {
	RecordProcessed(format string)
	RecordFailed(reason string)
	Fallback()
	Warnings(n int)
}

// Nop discards every event.
type Nop struct{}

// RecordProcessed does nothing.
func (Nop) RecordProcessed(string) {}

// RecordFailed does nothing.
func (Nop) RecordFailed(string) {}

// Fallback does nothing.
func (Nop) Fallback() {}

// Warnings does nothing.
func (Nop) Warnings(int) {}

// Prometheus counts events in prometheus metrics.
type Prometheus struct {
	processed *prometheus.CounterVec
	failed    *prometheus.CounterVec
	fallbacks prometheus.Counter
	warnings  prometheus.Counter
}

// NewPrometheus creates the conversion metrics and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		processed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marcidx_records_processed_total",
				Help: "Total number of records converted, by input format",
			},
			[]string{"format"},
		),
		failed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marcidx_records_failed_total",
				Help: "Total number of records that could not be converted",
			},
			[]string{"reason"},
		),
		fallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "marcidx_marcxml_fallbacks_total",
				Help: "Total number of records too large for ISO2709",
			},
		),
		warnings: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "marcidx_record_warnings_total",
				Help: "Total number of advisory warnings raised while converting",
			},
		),
	}
}

// RecordProcessed counts a converted record by its input format.
func (p *Prometheus) RecordProcessed(format string) {
	p.processed.WithLabelValues(format).Inc()
}

// RecordFailed counts a record that could not be converted, by reason.
func (p *Prometheus) RecordFailed(reason string) {
	p.failed.WithLabelValues(reason).Inc()
}

// Fallback counts a record written as MARCXML.
func (p *Prometheus) Fallback() {
	p.fallbacks.Inc()
}

// Warnings adds n advisory warnings.
func (p *Prometheus) Warnings(n int) {
	if n > 0 {
		p.warnings.Add(float64(n))
	}
}
