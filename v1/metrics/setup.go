package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a dedicated Prometheus registry, the registration metrics and the
// HTTP server exposing them.
type Metrics struct {
	// Server serves /metrics from Registry.
	Server *http.Server

	// Registry is isolated from the global default registry.
	Registry *prometheus.Registry

	namespace  string
	registerer prometheus.Registerer

	registrationsTotal   *prometheus.CounterVec
	registrationDuration *prometheus.HistogramVec
	adaptersInstalled    *prometheus.GaugeVec
}

// NewMetrics creates the registry, registers the registration metrics (and the
// default collectors when enabled) and prepares the HTTP server.
//
// Every metric carries the constant label service="<cfg.ServiceName>".
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "search-api"})
//	pool, err := pgxvector.NewPool(ctx, cfg, bridge.WithObserver(m))
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		namespace:  cfg.Namespace,
		registerer: wrapped,
	}

	m.registrationsTotal = m.newCounterVec("roovector_registrations_total",
		"Total number of vector type registration calls by result", []string{labelLibrary, "result"})
	m.registrationDuration = m.newHistogramVec("roovector_registration_duration_seconds",
		"Duration of vector type registration calls in seconds", []string{labelLibrary}, registrationBuckets)
	m.adaptersInstalled = m.newGaugeVec("roovector_adapters_installed",
		"Adapters installed by the last registration call", []string{labelLibrary, "kind", "format"})

	wrapped.MustRegister(
		m.registrationsTotal,
		m.registrationDuration,
		m.adaptersInstalled,
	)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	m.Server = &http.Server{
		Addr:    address,
		Handler: mux,
	}
	return m
}
