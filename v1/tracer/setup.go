package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Aleph-Alpha/roovector-go"

// Tracer wraps an OpenTelemetry TracerProvider.
//
// NewClient installs the provider globally, so registration calls that do not
// receive bridge.WithTracer still end up in it.
type Tracer struct {
	provider *sdktrace.TracerProvider
}

// NewClient builds the tracer provider and sets it as the global provider
// together with the W3C trace-context and baggage propagators.
func NewClient(cfg Config) (*Tracer, error) {
	var options []sdktrace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient())
		if err != nil {
			return nil, fmt.Errorf("cannot initiate trace exporter: %w", err)
		}
		options = append(options, sdktrace.WithBatcher(exporter))
	}

	options = append(options, sdktrace.WithResource(resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("deployment.environment", cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	return newWithOptions(options...), nil
}

func newWithOptions(options ...sdktrace.TracerProviderOption) *Tracer {
	tp := sdktrace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return &Tracer{provider: tp}
}

// Tracer returns a named tracer suitable for bridge.WithTracer.
func (t *Tracer) Tracer() trace.Tracer {
	return t.provider.Tracer(instrumentationName)
}

// StartSpan starts a span as a child of any span in ctx.
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return t.Tracer().Start(ctx, name)
}

// RecordErrorOnSpan records err and marks the span as failed.
func (t *Tracer) RecordErrorOnSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
