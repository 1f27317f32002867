package bridge

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Outcome lists what a Register call resolved and installed. On failure it
// still reports whatever was installed before the error.
type Outcome struct {
	Schema      string
	Descriptors []TypeDescriptor
	Adapters    []AdapterInfo
}

// Count returns the number of adapters installed for kind.
func (o Outcome) Count(kind Kind) int {
	n := 0
	for _, a := range o.Adapters {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Has reports whether an adapter for kind and format was installed.
func (o Outcome) Has(kind Kind, format Format) bool {
	for _, a := range o.Adapters {
		if a.Kind == kind && a.Format == format {
			return true
		}
	}
	return false
}

// Descriptor returns the resolved descriptor for kind, if resolution got that far.
func (o Outcome) Descriptor(kind Kind) (TypeDescriptor, bool) {
	for _, d := range o.Descriptors {
		if d.Kind == kind {
			return d, true
		}
	}
	return TypeDescriptor{}, false
}

// Result carries the outcome of RegisterAsync.
type Result struct {
	Outcome Outcome
	Err     error
}

// Register resolves both vector types through host and installs their adapters.
//
// roovector must exist; its absence aborts before anything is installed.
// roohalfvec is skipped when the database does not define it. Lookup errors
// other than "unknown type" abort the call.
//
// Calling Register again on the same host installs identical adapters and
// leaves the registry unchanged.
//
// The call runs inside a roovector.register span with one roovector.resolve
// child per lookup. Log lines carry that span's ids when the logger is a
// ContextLogger. The observer, if any, is notified exactly once, after the
// span attributes are set.
//
// Errors:
//   - *TypeNotFoundError: roovector is missing from the schema
//   - *UnexpectedLookupError: a catalog query failed for another reason
//   - *RegistryInstallError: the host rejected a pair, or ctx was cancelled
//     between two installs
//
// Example with a host from one of the client packages:
//
//	outcome, err := bridge.Register(ctx, host,
//	    bridge.WithSchema("vectors"),
//	    bridge.WithLibrary("pgx"),
//	    bridge.WithLogger(log),
//	)
//	if bridge.IsTypeNotFound(err) {
//	    // CREATE EXTENSION roovector has not been run
//	}
//	if outcome.Count(bridge.KindHalfVector) == 0 {
//	    // half-precision columns are unavailable on this database
//	}
func Register(ctx context.Context, host Host, opts ...Option) (Outcome, error) {
	o := newOptions(opts)
	start := time.Now()

	ctx, span := o.tracer.Start(ctx, "roovector.register", trace.WithAttributes(
		attribute.String("db.schema", o.schema),
		attribute.String("roovector.library", o.library),
	))
	defer span.End()

	outcome, err := register(ctx, host, o)

	fields := map[string]interface{}{
		"library":  o.library,
		"schema":   o.schema,
		"adapters": len(outcome.Adapters),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logError(ctx, "roovector type registration failed", err, fields)
	} else {
		span.SetAttributes(attribute.Int("roovector.adapters", len(outcome.Adapters)))
		o.logDebug(ctx, "roovector types registered", fields)
	}

	if o.observer != nil {
		o.observer.ObserveRegistration(o.library, outcome, err, time.Since(start))
	}
	return outcome, err
}

// RegisterAsync runs Register on a new goroutine. The channel receives exactly
// one result and is buffered, so callers may stop listening.
func RegisterAsync(ctx context.Context, host Host, opts ...Option) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		outcome, err := Register(ctx, host, opts...)
		ch <- Result{Outcome: outcome, Err: err}
	}()
	return ch
}

func register(ctx context.Context, host Host, o options) (Outcome, error) {
	outcome := Outcome{Schema: o.schema}

	desc, err := resolveTraced(ctx, host, KindVector, o)
	if err != nil {
		return outcome, err
	}
	outcome.Descriptors = append(outcome.Descriptors, desc)

	vectors, ok := BuildAdapters(desc, VectorCodec)
	if !ok {
		return outcome, &RegistryInstallError{Kind: KindVector, OID: desc.OID, Err: ErrAbsentOID}
	}
	if err := install(ctx, vectors.Kind(), vectors.OID(), vectors.Validate, func() error {
		return host.InstallVector(vectors)
	}); err != nil {
		return outcome, err
	}
	outcome.Adapters = append(outcome.Adapters, vectors.Infos()...)

	desc, err = resolveTraced(ctx, host, KindHalfVector, o)
	if err != nil {
		return outcome, err
	}
	outcome.Descriptors = append(outcome.Descriptors, desc)

	halves, ok := BuildAdapters(desc, HalfVectorCodec)
	if !ok {
		o.logInfo(ctx, "roohalfvec type not found, skipping half-precision registration", map[string]interface{}{
			"library": o.library,
			"schema":  o.schema,
		})
		return outcome, nil
	}
	if err := install(ctx, halves.Kind(), halves.OID(), halves.Validate, func() error {
		return host.InstallHalfVector(halves)
	}); err != nil {
		return outcome, err
	}
	outcome.Adapters = append(outcome.Adapters, halves.Infos()...)

	return outcome, nil
}

func resolveTraced(ctx context.Context, lookup Lookup, kind Kind, o options) (TypeDescriptor, error) {
	ctx, span := o.tracer.Start(ctx, "roovector.resolve", trace.WithAttributes(
		attribute.String("db.type", kind.TypeName()),
	))
	defer span.End()

	desc, err := Resolve(ctx, lookup, kind, o.schema)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return desc, err
	}
	span.SetAttributes(
		attribute.Int64("db.type_oid", int64(desc.OID)),
		attribute.Bool("db.type_absent", desc.Absent()),
	)
	return desc, nil
}

// install runs fn unless ctx is already done or the pair is unusable, so a
// cancelled call never reaches the registry halfway through.
func install(ctx context.Context, kind Kind, oid uint32, validate func() error, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("registering %s: %w", kind, err)
	}
	if err := validate(); err != nil {
		return &RegistryInstallError{Kind: kind, OID: oid, Err: err}
	}
	if err := fn(); err != nil {
		if IsRegistryInstall(err) {
			return err
		}
		return &RegistryInstallError{Kind: kind, OID: oid, Err: err}
	}
	return nil
}
