package metrics

import (
	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector is implemented by *Metrics.
type MetricsCollector interface {
	bridge.Observer

	// CreateCounter creates and registers a CounterVec.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates and registers a HistogramVec.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates and registers a GaugeVec.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}

var _ MetricsCollector = (*Metrics)(nil)

// registrationBuckets covers a single catalog round trip on a local socket up
// to a slow cross-region link.
var registrationBuckets = []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

const (
	resultSuccess      = "success"
	resultTypeNotFound = "type_not_found"
	resultLookupError  = "lookup_error"
	resultInstallError = "install_error"
	resultOtherError   = "error"
	labelLibrary       = "library"
)

func classify(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case bridge.IsTypeNotFound(err):
		return resultTypeNotFound
	case bridge.IsUnexpectedLookup(err):
		return resultLookupError
	case bridge.IsRegistryInstall(err):
		return resultInstallError
	default:
		return resultOtherError
	}
}
