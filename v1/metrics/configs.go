package metrics

// DefaultMetricsAddress is used when Config.Address is empty.
const DefaultMetricsAddress = ":9090"

// Config defines the Prometheus metrics server settings.
type Config struct {
	// Address is where the /metrics HTTP server listens, e.g. ":9090" or
	// "127.0.0.1:9100". Default: ":9090".
	Address string `yaml:"address"`

	// EnableDefaultCollectors registers the Go runtime, process and build info
	// collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors"`

	// Namespace prefixes every metric name registered by this package.
	//
	//   Namespace: "search"
	//   → search_roovector_registrations_total
	Namespace string `yaml:"namespace"`

	// ServiceName is attached to every metric as the constant "service" label.
	ServiceName string `yaml:"service_name"`
}
