package tracer

// Config defines the tracer settings.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name"`

	// AppEnv is recorded as deployment.environment.
	AppEnv string `yaml:"app_env"`

	// EnableExport sends spans to an OTLP/HTTP collector. The endpoint and
	// headers come from the standard OTEL_EXPORTER_OTLP_* environment variables.
	EnableExport bool `yaml:"enable_export"`
}
