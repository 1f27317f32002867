package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config defines the logger settings.
type Config struct {
	// Level is one of debug, info, warning, error. Anything else means info.
	Level string `yaml:"level"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name"`

	// EnableTracing adds trace_id and span_id from the context to entries
	// written through the *WithContext methods.
	EnableTracing bool `yaml:"enable_tracing"`
}
