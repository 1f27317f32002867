package pqvector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/Aleph-Alpha/roovector-go/v1/vector"
)

// Library is the name registrations through this package are labelled with.
const Library = "lib/pq"

// ErrNotRegistered is returned when a value is encoded or decoded for a type
// that has no codec in the table.
var ErrNotRegistered = errors.New("no codec registered")

// Encoder appends the wire representation of v to buf.
type Encoder func(v any, buf []byte) ([]byte, error)

// Decoder converts a wire payload into a value. It must not retain src.
type Decoder func(src []byte) (any, error)

type formatCodec struct {
	encode Encoder
	decode Decoder
}

type typeEntry struct {
	name    string
	schema  string
	formats map[bridge.Format]formatCodec
}

// Codecs is an OID-keyed table of per-format encoders and decoders. It is
// safe for concurrent use; a later registration for the same OID and format
// replaces the earlier one.
type Codecs struct {
	lookup           bridge.Lookup
	binaryParameters bool

	mu     sync.RWMutex
	byOID  map[uint32]*typeEntry
	byName map[string]uint32
}

var _ bridge.Host = (*Codecs)(nil)

// CodecsOption configures NewCodecs.
type CodecsOption func(*Codecs)

// WithBinaryParameters makes Arg produce binary payloads. Enable it only when
// the connection string sets binary_parameters=yes.
func WithBinaryParameters(enabled bool) CodecsOption {
	return func(c *Codecs) {
		c.binaryParameters = enabled
	}
}

// NewCodecs returns an empty table resolving type names through lookup.
func NewCodecs(lookup bridge.Lookup, opts ...CodecsOption) *Codecs {
	c := &Codecs{
		lookup: lookup,
		byOID:  make(map[uint32]*typeEntry),
		byName: make(map[string]uint32),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTypeCodec resolves typeName in schema and installs encoder and decoder
// for format under its OID. A type the database does not define yields an
// error matching bridge.ErrUnknownType and leaves the table unchanged.
func (c *Codecs) SetTypeCodec(ctx context.Context, typeName, schema string, format bridge.Format, encoder Encoder, decoder Decoder) error {
	if schema == "" {
		schema = bridge.DefaultSchema
	}
	if format != bridge.FormatText && format != bridge.FormatBinary {
		return fmt.Errorf("%s.%s: %w: %d", schema, typeName, bridge.ErrUnsupportedFormat, int16(format))
	}

	oid, err := c.LookupType(ctx, typeName, schema)
	if err != nil {
		if errors.Is(err, bridge.ErrUnknownType) {
			return unknownType(schema, typeName)
		}
		return err
	}
	if oid == 0 {
		return unknownType(schema, typeName)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(oid, typeName, schema, format, formatCodec{encode: encoder, decode: decoder})
	return nil
}

func unknownType(schema, name string) error {
	return fmt.Errorf("%w: %s.%s", bridge.ErrUnknownType, schema, name)
}

// LookupType implements bridge.Lookup.
func (c *Codecs) LookupType(ctx context.Context, name, schema string) (uint32, error) {
	return c.lookup.LookupType(ctx, name, schema)
}

// InstallVector implements bridge.Host.
func (c *Codecs) InstallVector(pair bridge.AdapterPair[vector.Vector]) error {
	return installPair(c, pair, vector.NewVector)
}

// InstallHalfVector implements bridge.Host.
func (c *Codecs) InstallHalfVector(pair bridge.AdapterPair[vector.HalfVector]) error {
	return installPair(c, pair, nil)
}

// installPair puts both formats of pair in the table under one lock, so
// readers never observe a single format of a type.
func installPair[V any](c *Codecs, pair bridge.AdapterPair[V], fromSlice func([]float32) V) error {
	if err := pair.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, format := range bridge.Formats() {
		adapter, _ := pair.Adapter(format)
		c.set(pair.OID(), pair.Kind().TypeName(), "", format, formatCodec{
			encode: encoderOf(adapter, fromSlice),
			decode: decoderOf(adapter),
		})
	}
	return nil
}

// set requires c.mu to be held for writing.
func (c *Codecs) set(oid uint32, name, schema string, format bridge.Format, fc formatCodec) {
	entry, ok := c.byOID[oid]
	if !ok {
		entry = &typeEntry{formats: make(map[bridge.Format]formatCodec, len(bridge.Formats()))}
		c.byOID[oid] = entry
	}
	entry.name = name
	if schema != "" {
		entry.schema = schema
	}
	entry.formats[format] = fc
	c.byName[name] = oid
}

// OID returns the OID registered for typeName.
func (c *Codecs) OID(typeName string) (uint32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	oid, ok := c.byName[typeName]
	return oid, ok
}

// Registered reports whether format has a codec for oid.
func (c *Codecs) Registered(oid uint32, format bridge.Format) bool {
	_, ok := c.codec(oid, format)
	return ok
}

func (c *Codecs) codec(oid uint32, format bridge.Format) (formatCodec, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.byOID[oid]
	if !ok {
		return formatCodec{}, false
	}
	fc, ok := entry.formats[format]
	return fc, ok
}

// Encode converts v with the codec registered for oid and format.
func (c *Codecs) Encode(oid uint32, format bridge.Format, v any, buf []byte) ([]byte, error) {
	fc, ok := c.codec(oid, format)
	if !ok || fc.encode == nil {
		return nil, fmt.Errorf("encoding oid %d (%s): %w", oid, format, ErrNotRegistered)
	}
	return fc.encode(v, buf)
}

// Decode converts src with the codec registered for oid and format.
func (c *Codecs) Decode(oid uint32, format bridge.Format, src []byte) (any, error) {
	fc, ok := c.codec(oid, format)
	if !ok || fc.decode == nil {
		return nil, fmt.Errorf("decoding oid %d (%s): %w", oid, format, ErrNotRegistered)
	}
	return fc.decode(src)
}

func encoderOf[V any](adapter bridge.FormatAdapter[V], fromSlice func([]float32) V) Encoder {
	return func(v any, buf []byte) ([]byte, error) {
		switch v := v.(type) {
		case V:
			return adapter.Encode(v, buf)
		case *V:
			if v != nil {
				return adapter.Encode(*v, buf)
			}
		case []float32:
			if fromSlice != nil {
				return adapter.Encode(fromSlice(v), buf)
			}
		}
		return nil, fmt.Errorf("%s: cannot encode %T", adapter.Kind(), v)
	}
}

func decoderOf[V any](adapter bridge.FormatAdapter[V]) Decoder {
	return func(src []byte) (any, error) {
		v, err := adapter.Decode(src)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
