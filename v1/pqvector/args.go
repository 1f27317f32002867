package pqvector

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/Aleph-Alpha/roovector-go/v1/vector"
)

// Arg wraps v for use as a query argument. v may be a vector.Vector,
// vector.HalfVector, a pointer to either, or a []float32 (sent as roovector).
// The type must have been registered before the query runs.
func (c *Codecs) Arg(v any) driver.Valuer {
	return arg{codecs: c, value: v}
}

type arg struct {
	codecs *Codecs
	value  any
}

func (a arg) Value() (driver.Value, error) {
	kind, isNil, err := kindOf(a.value)
	if err != nil {
		return nil, err
	}
	if isNil {
		return nil, nil
	}

	oid, ok := a.codecs.OID(kind.TypeName())
	if !ok {
		return nil, fmt.Errorf("%s: %w", kind, ErrNotRegistered)
	}

	if a.codecs.binaryParameters {
		// lib/pq sends []byte arguments in binary format when
		// binary_parameters is enabled.
		return a.codecs.Encode(oid, bridge.FormatBinary, a.value, nil)
	}
	text, err := a.codecs.Encode(oid, bridge.FormatText, a.value, nil)
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

func kindOf(v any) (kind bridge.Kind, isNil bool, err error) {
	switch v := v.(type) {
	case vector.Vector:
		return bridge.KindVector, false, nil
	case *vector.Vector:
		return bridge.KindVector, v == nil, nil
	case []float32:
		return bridge.KindVector, v == nil, nil
	case vector.HalfVector:
		return bridge.KindHalfVector, false, nil
	case *vector.HalfVector:
		return bridge.KindHalfVector, v == nil, nil
	case nil:
		return 0, true, nil
	default:
		return 0, false, fmt.Errorf("pqvector: unsupported argument type %T", v)
	}
}

// Dest wraps a scan destination. dst must be a *vector.Vector,
// *vector.HalfVector or *[]float32; a NULL column leaves the zero value
// in dst.
func (c *Codecs) Dest(dst any) sql.Scanner {
	return dest{codecs: c, target: dst}
}

type dest struct {
	codecs *Codecs
	target any
}

func (d dest) Scan(src any) error {
	var kind bridge.Kind
	switch d.target.(type) {
	case *vector.Vector, *[]float32:
		kind = bridge.KindVector
	case *vector.HalfVector:
		kind = bridge.KindHalfVector
	default:
		return fmt.Errorf("pqvector: unsupported scan destination %T", d.target)
	}

	var data []byte
	switch src := src.(type) {
	case nil:
		return d.assign(nil)
	case []byte:
		data = src
	case string:
		data = []byte(src)
	default:
		return fmt.Errorf("pqvector: cannot scan %T into %T", src, d.target)
	}

	oid, ok := d.codecs.OID(kind.TypeName())
	if !ok {
		return fmt.Errorf("%s: %w", kind, ErrNotRegistered)
	}
	value, err := d.codecs.Decode(oid, bridge.FormatText, data)
	if err != nil {
		return err
	}
	return d.assign(value)
}

func (d dest) assign(value any) error {
	switch t := d.target.(type) {
	case *vector.Vector:
		v, _ := value.(vector.Vector)
		*t = v
	case *vector.HalfVector:
		v, _ := value.(vector.HalfVector)
		*t = v
	case *[]float32:
		if v, ok := value.(vector.Vector); ok {
			*t = v.Slice()
		} else {
			*t = nil
		}
	}
	return nil
}
