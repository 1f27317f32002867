package bridge

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Aleph-Alpha/roovector-go/v1/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"
)

// memHost is an in-memory registry keyed by OID and format.
type memHost struct {
	mu        sync.Mutex
	oids      map[string]uint32
	lookupErr map[string]error
	installed map[uint32]map[Format]AdapterInfo
	installs  int
}

func newMemHost(oids map[string]uint32) *memHost {
	return &memHost{
		oids:      oids,
		lookupErr: map[string]error{},
		installed: map[uint32]map[Format]AdapterInfo{},
	}
}

func (h *memHost) LookupType(_ context.Context, name, _ string) (uint32, error) {
	if err := h.lookupErr[name]; err != nil {
		return 0, err
	}
	oid, ok := h.oids[name]
	if !ok {
		return 0, ErrUnknownType
	}
	return oid, nil
}

func (h *memHost) InstallVector(pair AdapterPair[vector.Vector]) error {
	h.put(pair.Infos())
	return nil
}

func (h *memHost) InstallHalfVector(pair AdapterPair[vector.HalfVector]) error {
	h.put(pair.Infos())
	return nil
}

func (h *memHost) put(infos []AdapterInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.installs++
	for _, info := range infos {
		if h.installed[info.OID] == nil {
			h.installed[info.OID] = map[Format]AdapterInfo{}
		}
		h.installed[info.OID][info.Format] = info
	}
}

func (h *memHost) snapshot() map[uint32]map[Format]AdapterInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[uint32]map[Format]AdapterInfo, len(h.installed))
	for oid, formats := range h.installed {
		out[oid] = make(map[Format]AdapterInfo, len(formats))
		for f, info := range formats {
			out[oid][f] = info
		}
	}
	return out
}

type recordingObserver struct {
	library string
	outcome Outcome
	err     error
	calls   int
}

func (r *recordingObserver) ObserveRegistration(library string, outcome Outcome, err error, _ time.Duration) {
	r.library = library
	r.outcome = outcome
	r.err = err
	r.calls++
}

func TestRegisterBothTypes(t *testing.T) {
	host := newMemHost(map[string]uint32{"roovector": 16390, "roohalfvec": 16400})

	outcome, err := Register(context.Background(), host)
	require.NoError(t, err)

	assert.Len(t, outcome.Adapters, 4)
	assert.Equal(t, 2, outcome.Count(KindVector))
	assert.Equal(t, 2, outcome.Count(KindHalfVector))
	for _, kind := range []Kind{KindVector, KindHalfVector} {
		for _, format := range Formats() {
			assert.True(t, outcome.Has(kind, format), "%s %s", kind, format)
		}
	}

	installed := host.snapshot()
	assert.Len(t, installed[16390], 2)
	assert.Len(t, installed[16400], 2)
	assert.Equal(t, KindHalfVector, installed[16400][FormatBinary].Kind)
}

func TestRegisterWithoutHalfVector(t *testing.T) {
	host := newMemHost(map[string]uint32{"roovector": 16390})

	outcome, err := Register(context.Background(), host)
	require.NoError(t, err)

	assert.Len(t, outcome.Adapters, 2)
	assert.Zero(t, outcome.Count(KindHalfVector))

	desc, ok := outcome.Descriptor(KindHalfVector)
	require.True(t, ok)
	assert.True(t, desc.Absent())
	assert.Len(t, host.snapshot(), 1)
}

func TestRegisterMissingVectorLeavesRegistryUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := NewMockHost(ctrl)
	host.EXPECT().LookupType(gomock.Any(), "roovector", "public").Return(uint32(0), ErrUnknownType)

	outcome, err := Register(context.Background(), host)
	require.Error(t, err)

	var notFound *TypeNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "roovector", notFound.Name)
	assert.Empty(t, outcome.Adapters)
}

func TestRegisterHalfVectorPermissionError(t *testing.T) {
	denied := errors.New("permission denied for table pg_type")

	ctrl := gomock.NewController(t)
	host := NewMockHost(ctrl)
	gomock.InOrder(
		host.EXPECT().LookupType(gomock.Any(), "roovector", "public").Return(uint32(16390), nil),
		host.EXPECT().InstallVector(gomock.Any()).Return(nil),
		host.EXPECT().LookupType(gomock.Any(), "roohalfvec", "public").Return(uint32(0), denied),
	)

	outcome, err := Register(context.Background(), host)
	require.Error(t, err)
	assert.True(t, IsUnexpectedLookup(err))
	assert.ErrorIs(t, err, denied)
	assert.False(t, IsTypeNotFound(err))

	assert.Equal(t, 2, outcome.Count(KindVector))
	assert.Zero(t, outcome.Count(KindHalfVector))
}

func TestRegisterUsesSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := NewMockHost(ctrl)
	host.EXPECT().LookupType(gomock.Any(), "roovector", "vectors").Return(uint32(1), nil)
	host.EXPECT().InstallVector(gomock.Any()).DoAndReturn(func(pair AdapterPair[vector.Vector]) error {
		assert.Equal(t, uint32(1), pair.OID())
		return nil
	})
	host.EXPECT().LookupType(gomock.Any(), "roohalfvec", "vectors").Return(uint32(2), nil)
	host.EXPECT().InstallHalfVector(gomock.Any()).DoAndReturn(func(pair AdapterPair[vector.HalfVector]) error {
		assert.Equal(t, uint32(2), pair.OID())
		assert.Equal(t, KindHalfVector, pair.Kind())
		return nil
	})

	outcome, err := Register(context.Background(), host, WithSchema("vectors"))
	require.NoError(t, err)
	assert.Equal(t, "vectors", outcome.Schema)
}

func TestRegisterInstallRejected(t *testing.T) {
	rejected := errors.New("registry is frozen")

	ctrl := gomock.NewController(t)
	host := NewMockHost(ctrl)
	host.EXPECT().LookupType(gomock.Any(), "roovector", "public").Return(uint32(16390), nil)
	host.EXPECT().InstallVector(gomock.Any()).Return(rejected)

	outcome, err := Register(context.Background(), host)
	require.Error(t, err)

	var installErr *RegistryInstallError
	require.ErrorAs(t, err, &installErr)
	assert.Equal(t, KindVector, installErr.Kind)
	assert.Equal(t, uint32(16390), installErr.OID)
	assert.ErrorIs(t, err, rejected)
	assert.Empty(t, outcome.Adapters)
}

func TestRegisterCancelledBeforeInstall(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	ctrl := gomock.NewController(t)
	host := NewMockHost(ctrl)
	host.EXPECT().LookupType(gomock.Any(), "roovector", "public").DoAndReturn(
		func(context.Context, string, string) (uint32, error) {
			cancel()
			return 16390, nil
		})

	outcome, err := Register(ctx, host)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcome.Adapters)
}

func TestRegisterCancelledBeforeHalfVectorInstall(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	ctrl := gomock.NewController(t)
	host := NewMockHost(ctrl)
	host.EXPECT().LookupType(gomock.Any(), "roovector", "public").Return(uint32(16390), nil)
	host.EXPECT().InstallVector(gomock.Any()).Return(nil)
	host.EXPECT().LookupType(gomock.Any(), "roohalfvec", "public").DoAndReturn(
		func(context.Context, string, string) (uint32, error) {
			cancel()
			return 16400, nil
		})

	outcome, err := Register(ctx, host)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, outcome.Count(KindVector))
	assert.Zero(t, outcome.Count(KindHalfVector))
}

func TestRegisterIsIdempotent(t *testing.T) {
	host := newMemHost(map[string]uint32{"roovector": 16390, "roohalfvec": 16400})

	first, err := Register(context.Background(), host)
	require.NoError(t, err)
	once := host.snapshot()

	second, err := Register(context.Background(), host)
	require.NoError(t, err)

	assert.Equal(t, once, host.snapshot())
	assert.Equal(t, first.Adapters, second.Adapters)
}

func TestRegisterConcurrentCallsConverge(t *testing.T) {
	host := newMemHost(map[string]uint32{"roovector": 16390, "roohalfvec": 16400})

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := Register(ctx, host)
			return err
		})
	}
	require.NoError(t, g.Wait())

	installed := host.snapshot()
	assert.Len(t, installed, 2)
	assert.Len(t, installed[16390], 2)
	assert.Len(t, installed[16400], 2)
	assert.Equal(t, 16, host.installs)
}

func TestRegisterAsync(t *testing.T) {
	host := newMemHost(map[string]uint32{"roovector": 16390})

	res := <-RegisterAsync(context.Background(), host, WithLibrary("test"))
	require.NoError(t, res.Err)
	assert.Len(t, res.Outcome.Adapters, 2)
}

func TestRegisterNotifiesObserver(t *testing.T) {
	host := newMemHost(map[string]uint32{"roovector": 16390, "roohalfvec": 16400})
	obs := &recordingObserver{}

	_, err := Register(context.Background(), host, WithObserver(obs), WithLibrary("pgx"))
	require.NoError(t, err)

	assert.Equal(t, 1, obs.calls)
	assert.Equal(t, "pgx", obs.library)
	assert.NoError(t, obs.err)
	assert.Len(t, obs.outcome.Adapters, 4)
}

func TestRegisterRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	host := newMemHost(map[string]uint32{})
	_, err := Register(context.Background(), host, WithTracer(provider.Tracer("test")))
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "roovector.resolve", spans[0].Name())
	assert.Equal(t, "roovector.register", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

type logEntry struct {
	level  string
	msg    string
	spanID trace.SpanID
}

// ctxLogger records which methods Register calls and the span found in ctx.
type ctxLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *ctxLogger) add(ctx context.Context, level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, spanID: trace.SpanContextFromContext(ctx).SpanID()})
}

func (l *ctxLogger) Info(msg string, _ error, _ ...map[string]interface{}) {
	l.add(context.Background(), "info", msg)
}
func (l *ctxLogger) Debug(msg string, _ error, _ ...map[string]interface{}) {
	l.add(context.Background(), "debug", msg)
}
func (l *ctxLogger) Warn(msg string, _ error, _ ...map[string]interface{}) {
	l.add(context.Background(), "warn", msg)
}
func (l *ctxLogger) Error(msg string, _ error, _ ...map[string]interface{}) {
	l.add(context.Background(), "error", msg)
}
func (l *ctxLogger) InfoWithContext(ctx context.Context, msg string, _ error, _ ...map[string]interface{}) {
	l.add(ctx, "info", msg)
}
func (l *ctxLogger) DebugWithContext(ctx context.Context, msg string, _ error, _ ...map[string]interface{}) {
	l.add(ctx, "debug", msg)
}
func (l *ctxLogger) WarnWithContext(ctx context.Context, msg string, _ error, _ ...map[string]interface{}) {
	l.add(ctx, "warn", msg)
}
func (l *ctxLogger) ErrorWithContext(ctx context.Context, msg string, _ error, _ ...map[string]interface{}) {
	l.add(ctx, "error", msg)
}

func TestRegisterLogsWithSpanContext(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	log := &ctxLogger{}
	host := newMemHost(map[string]uint32{"roovector": 16390})
	_, err := Register(context.Background(), host, WithLogger(log), WithTracer(provider.Tracer("test")))
	require.NoError(t, err)

	var registerSpan trace.SpanID
	for _, span := range recorder.Ended() {
		if span.Name() == "roovector.register" {
			registerSpan = span.SpanContext().SpanID()
		}
	}
	require.True(t, registerSpan.IsValid())

	require.Len(t, log.entries, 2)
	assert.Equal(t, "info", log.entries[0].level)
	assert.Contains(t, log.entries[0].msg, "roohalfvec")
	assert.Equal(t, "debug", log.entries[1].level)
	for _, e := range log.entries {
		assert.Equal(t, registerSpan, e.spanID, e.msg)
	}
}

func TestRegisterFailureLogsWithSpanContext(t *testing.T) {
	log := &ctxLogger{}
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	_, err := Register(context.Background(), newMemHost(map[string]uint32{}), WithLogger(log), WithTracer(provider.Tracer("test")))
	require.Error(t, err)

	require.Len(t, log.entries, 1)
	assert.Equal(t, "error", log.entries[0].level)
	assert.True(t, log.entries[0].spanID.IsValid())
}
