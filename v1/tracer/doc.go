// Package tracer sets up OpenTelemetry tracing.
//
// NewClient installs an SDK tracer provider as the global provider, so the
// roovector.register and roovector.resolve spans opened during type
// registration are recorded without further wiring. Pass Tracer() to
// bridge.WithTracer to scope them to this provider explicitly.
//
// Export is off by default; set EnableExport and the OTEL_EXPORTER_OTLP_*
// environment variables to ship spans over OTLP/HTTP.
package tracer
