package pgxvector

import (
	"database/sql/driver"
	"fmt"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/Aleph-Alpha/roovector-go/v1/vector"
	"github.com/jackc/pgx/v5/pgtype"
)

// Codec is the pgtype.Codec of one vector type. It delegates every
// conversion to the adapter pair it was built from.
type Codec[V any] struct {
	pair bridge.AdapterPair[V]

	// fromSlice and toSlice are set for types that also accept []float32.
	fromSlice func([]float32) V
	toSlice   func(V) []float32
}

// NewVectorCodec returns the codec for roovector. It encodes vector.Vector and
// []float32 and scans into *vector.Vector and *[]float32.
func NewVectorCodec(pair bridge.AdapterPair[vector.Vector]) *Codec[vector.Vector] {
	return &Codec[vector.Vector]{
		pair:      pair,
		fromSlice: vector.NewVector,
		toSlice:   vector.Vector.Slice,
	}
}

// NewHalfVectorCodec returns the codec for roohalfvec. It encodes and scans
// vector.HalfVector only.
func NewHalfVectorCodec(pair bridge.AdapterPair[vector.HalfVector]) *Codec[vector.HalfVector] {
	return &Codec[vector.HalfVector]{pair: pair}
}

func (c *Codec[V]) FormatSupported(format int16) bool {
	_, ok := c.pair.Adapter(bridge.Format(format))
	return ok
}

func (c *Codec[V]) PreferredFormat() int16 {
	return pgtype.BinaryFormatCode
}

func (c *Codec[V]) PlanEncode(m *pgtype.Map, oid uint32, format int16, value any) pgtype.EncodePlan {
	adapter, ok := c.pair.Adapter(bridge.Format(format))
	if !ok {
		return nil
	}

	switch value.(type) {
	case V:
		return encodePlan[V]{adapter: adapter}
	case []float32:
		if c.fromSlice != nil {
			return encodeSlicePlan[V]{adapter: adapter, fromSlice: c.fromSlice}
		}
	}
	return nil
}

type encodePlan[V any] struct {
	adapter bridge.FormatAdapter[V]
}

func (p encodePlan[V]) Encode(value any, buf []byte) ([]byte, error) {
	return p.adapter.Encode(value.(V), buf)
}

type encodeSlicePlan[V any] struct {
	adapter   bridge.FormatAdapter[V]
	fromSlice func([]float32) V
}

func (p encodeSlicePlan[V]) Encode(value any, buf []byte) ([]byte, error) {
	s := value.([]float32)
	if s == nil {
		return nil, nil
	}
	return p.adapter.Encode(p.fromSlice(s), buf)
}

func (c *Codec[V]) PlanScan(m *pgtype.Map, oid uint32, format int16, target any) pgtype.ScanPlan {
	adapter, ok := c.pair.Adapter(bridge.Format(format))
	if !ok {
		return nil
	}

	switch target.(type) {
	case *V:
		return scanPlan[V]{adapter: adapter}
	case *[]float32:
		if c.toSlice != nil {
			return scanSlicePlan[V]{adapter: adapter, toSlice: c.toSlice}
		}
	}
	return nil
}

type scanPlan[V any] struct {
	adapter bridge.FormatAdapter[V]
}

func (p scanPlan[V]) Scan(src []byte, target any) error {
	if src == nil {
		return fmt.Errorf("cannot scan NULL into %T", target)
	}
	v, err := p.adapter.Decode(src)
	if err != nil {
		return err
	}
	*(target.(*V)) = v
	return nil
}

type scanSlicePlan[V any] struct {
	adapter bridge.FormatAdapter[V]
	toSlice func(V) []float32
}

func (p scanSlicePlan[V]) Scan(src []byte, target any) error {
	dst := target.(*[]float32)
	if src == nil {
		*dst = nil
		return nil
	}
	v, err := p.adapter.Decode(src)
	if err != nil {
		return err
	}
	*dst = p.toSlice(v)
	return nil
}

// DecodeDatabaseSQLValue returns the text form, which vector.Vector and
// vector.HalfVector accept in Scan. database/sql users of pgx/v5/stdlib
// (gorm included) receive this value.
func (c *Codec[V]) DecodeDatabaseSQLValue(m *pgtype.Map, oid uint32, format int16, src []byte) (driver.Value, error) {
	if src == nil {
		return nil, nil
	}
	if bridge.Format(format) == bridge.FormatText {
		return string(src), nil
	}

	v, err := c.decode(format, src)
	if err != nil {
		return nil, err
	}
	text, err := c.pair.Text.Encode(v, nil)
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// DecodeValue returns a V, used when scanning into *any.
func (c *Codec[V]) DecodeValue(m *pgtype.Map, oid uint32, format int16, src []byte) (any, error) {
	if src == nil {
		return nil, nil
	}
	return c.decode(format, src)
}

func (c *Codec[V]) decode(format int16, src []byte) (V, error) {
	adapter, ok := c.pair.Adapter(bridge.Format(format))
	if !ok {
		var zero V
		return zero, fmt.Errorf("%s: %w: %d", c.pair.Kind(), bridge.ErrUnsupportedFormat, format)
	}
	return adapter.Decode(src)
}
