package bridge

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Aleph-Alpha/roovector-go/v1/bridge"

// Logger is the logging contract of the bridge. *logger.Logger from v1/logger
// satisfies it.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// ContextLogger is a Logger that also reads the trace and span ids of the
// active span from a context. When the configured logger implements it,
// Register logs through the context-aware methods so registration log lines
// can be joined with the roovector.register span. *logger.Logger implements it.
type ContextLogger interface {
	Logger
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Observer is notified once per Register call. *metrics.Metrics from
// v1/metrics satisfies it.
type Observer interface {
	ObserveRegistration(library string, outcome Outcome, err error, duration time.Duration)
}

// Option configures Register.
type Option func(*options)

type options struct {
	schema   string
	library  string
	logger   Logger
	observer Observer
	tracer   trace.Tracer
}

func newOptions(opts []Option) options {
	o := options{
		schema:  DefaultSchema,
		library: "unknown",
		logger:  nopLogger{},
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSchema sets the schema the vector types are looked up in.
func WithSchema(schema string) Option {
	return func(o *options) {
		if schema != "" {
			o.schema = schema
		}
	}
}

// WithLibrary labels logs, spans and metrics with the client library name.
func WithLibrary(name string) Option {
	return func(o *options) {
		if name != "" {
			o.library = name
		}
	}
}

// WithLogger sets the logger. A nil logger disables logging. Loggers that
// also implement ContextLogger receive the registration span in ctx.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l == nil {
			o.logger = nopLogger{}
			return
		}
		o.logger = l
	}
}

// WithObserver sets an observer for registration results.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithTracer sets the tracer used for registration spans. The global
// OpenTelemetry tracer provider is used otherwise.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

func (o options) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if cl, ok := o.logger.(ContextLogger); ok {
		cl.InfoWithContext(ctx, msg, nil, fields)
		return
	}
	o.logger.Info(msg, nil, fields)
}

func (o options) logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if cl, ok := o.logger.(ContextLogger); ok {
		cl.DebugWithContext(ctx, msg, nil, fields)
		return
	}
	o.logger.Debug(msg, nil, fields)
}

func (o options) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if cl, ok := o.logger.(ContextLogger); ok {
		cl.ErrorWithContext(ctx, msg, err, fields)
		return
	}
	o.logger.Error(msg, err, fields)
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
