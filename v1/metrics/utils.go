package metrics

import (
	"time"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/prometheus/client_golang/prometheus"
)

// ObserveRegistration implements bridge.Observer.
func (m *Metrics) ObserveRegistration(library string, outcome bridge.Outcome, err error, duration time.Duration) {
	m.registrationsTotal.WithLabelValues(library, classify(err)).Inc()
	m.registrationDuration.WithLabelValues(library).Observe(duration.Seconds())

	for _, kind := range []bridge.Kind{bridge.KindVector, bridge.KindHalfVector} {
		for _, format := range bridge.Formats() {
			value := 0.0
			if outcome.Has(kind, format) {
				value = 1
			}
			m.adaptersInstalled.WithLabelValues(library, kind.TypeName(), format.String()).Set(value)
		}
	}
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := m.newCounterVec(name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := m.newHistogramVec(name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := m.newGaugeVec(name, help, labels)
	m.registerer.MustRegister(gauge)
	return gauge
}

func (m *Metrics) newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func (m *Metrics) newHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

func (m *Metrics) newGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}
