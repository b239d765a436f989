// Package metrics counts units of work, created elements and lookup misses
// and can write them out as a Prometheus textfile.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "gorebar_"

	ResultCommitted  = "committed"
	ResultRolledBack = "rolled_back"
)

// Metrics holds the counters of one run. Each run gets its own registry so
// repeated runs in one process (tests) do not collide.
type Metrics struct {
	registry *prometheus.Registry

	unitsOfWork     *prometheus.CounterVec
	elementsCreated *prometheus.CounterVec
	lookupMisses    *prometheus.CounterVec
}

// New creates and registers the counters.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		unitsOfWork: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "units_of_work_total",
				Help: "Transactional units of work by kind and terminal state",
			},
			[]string{"kind", "result"},
		),
		elementsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "elements_created_total",
				Help: "Bar elements created by kind",
			},
			[]string{"kind"},
		),
		lookupMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "lookup_misses_total",
				Help: "Catalog lookups that found nothing, by what was looked up",
			},
			[]string{"what"},
		),
	}
	m.registry.MustRegister(m.unitsOfWork, m.elementsCreated, m.lookupMisses)
	return m
}

// ObserveUnit records the terminal state of a unit of work.
func (m *Metrics) ObserveUnit(kind string, committed bool) {
	if m == nil {
		return
	}
	result := ResultRolledBack
	if committed {
		result = ResultCommitted
	}
	m.unitsOfWork.WithLabelValues(kind, result).Inc()
}

// ObserveCreated adds n created elements of kind.
func (m *Metrics) ObserveCreated(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.elementsCreated.WithLabelValues(kind).Add(float64(n))
}

// ObserveLookupMiss records a failed catalog lookup.
func (m *Metrics) ObserveLookupMiss(what string) {
	if m == nil {
		return
	}
	m.lookupMisses.WithLabelValues(what).Inc()
}

// Registry exposes the registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the node exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
