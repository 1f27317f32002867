package bridge

import (
	"bytes"
	"fmt"
)

// ValueCodec is the set of conversions a vector value type offers. The bridge
// never inspects the bytes it produces.
type ValueCodec[V any] struct {
	ToText     func(v V) (string, error)
	FromText   func(s string) (V, error)
	ToBinary   func(v V, buf []byte) ([]byte, error)
	FromBinary func(data []byte) (V, error)
}

// AdapterInfo identifies an installed adapter.
type AdapterInfo struct {
	Kind   Kind
	Format Format
	OID    uint32
}

// FormatAdapter converts values of one kind to and from one wire format for a
// resolved OID. The zero value is not usable; build adapters with
// NewFormatAdapter or BuildAdapters.
type FormatAdapter[V any] struct {
	kind   Kind
	format Format
	oid    uint32
	encode func(v V, buf []byte) ([]byte, error)
	decode func(src []byte) (V, error)
}

// NewFormatAdapter binds codec to oid for a single wire format.
func NewFormatAdapter[V any](kind Kind, format Format, oid uint32, codec ValueCodec[V]) (FormatAdapter[V], error) {
	if oid == 0 {
		return FormatAdapter[V]{}, fmt.Errorf("%s %s adapter: %w", kind, format, ErrAbsentOID)
	}

	a := FormatAdapter[V]{kind: kind, format: format, oid: oid}
	switch format {
	case FormatText:
		a.encode = func(v V, buf []byte) ([]byte, error) {
			s, err := codec.ToText(v)
			if err != nil {
				return nil, err
			}
			return append(buf, s...), nil
		}
		a.decode = func(src []byte) (V, error) {
			return codec.FromText(string(src))
		}
	case FormatBinary:
		a.encode = codec.ToBinary
		a.decode = func(src []byte) (V, error) {
			// Drivers may hand out views into a reused read buffer.
			return codec.FromBinary(bytes.Clone(src))
		}
	default:
		return FormatAdapter[V]{}, fmt.Errorf("%s adapter: %w: %d", kind, ErrUnsupportedFormat, int16(format))
	}
	return a, nil
}

// Kind returns the vector kind the adapter serves.
func (a FormatAdapter[V]) Kind() Kind { return a.kind }

// Format returns the wire format.
func (a FormatAdapter[V]) Format() Format { return a.format }

// OID returns the type OID the adapter is keyed by.
func (a FormatAdapter[V]) OID() uint32 { return a.oid }

// Info describes the adapter.
func (a FormatAdapter[V]) Info() AdapterInfo {
	return AdapterInfo{Kind: a.kind, Format: a.format, OID: a.oid}
}

// Valid reports whether the adapter was built by NewFormatAdapter.
func (a FormatAdapter[V]) Valid() bool {
	return a.oid != 0 && a.encode != nil && a.decode != nil
}

// Encode appends the wire representation of v to buf.
func (a FormatAdapter[V]) Encode(v V, buf []byte) ([]byte, error) {
	return a.encode(v, buf)
}

// Decode converts a wire payload into a value. src is not retained.
func (a FormatAdapter[V]) Decode(src []byte) (V, error) {
	return a.decode(src)
}

// AdapterPair holds the text and binary adapters of one type.
type AdapterPair[V any] struct {
	Text   FormatAdapter[V]
	Binary FormatAdapter[V]
}

// OID returns the OID both adapters are keyed by.
func (p AdapterPair[V]) OID() uint32 {
	return p.Text.oid
}

// Kind returns the vector kind of the pair.
func (p AdapterPair[V]) Kind() Kind {
	return p.Text.kind
}

// Adapter returns the adapter for format.
func (p AdapterPair[V]) Adapter(format Format) (FormatAdapter[V], bool) {
	switch format {
	case FormatText:
		return p.Text, true
	case FormatBinary:
		return p.Binary, true
	default:
		return FormatAdapter[V]{}, false
	}
}

// Validate checks that both adapters are usable and share kind and OID.
func (p AdapterPair[V]) Validate() error {
	if !p.Text.Valid() || !p.Binary.Valid() {
		return ErrAbsentOID
	}
	if p.Text.oid != p.Binary.oid || p.Text.kind != p.Binary.kind {
		return fmt.Errorf("mismatched adapter pair: %s/%d and %s/%d", p.Text.kind, p.Text.oid, p.Binary.kind, p.Binary.oid)
	}
	return nil
}

// Infos lists both adapters.
func (p AdapterPair[V]) Infos() []AdapterInfo {
	return []AdapterInfo{p.Text.Info(), p.Binary.Info()}
}

// BuildAdapters returns the adapter pair for desc, or false when the type is
// absent and nothing must be installed for it.
func BuildAdapters[V any](desc TypeDescriptor, codec ValueCodec[V]) (AdapterPair[V], bool) {
	if desc.Absent() {
		return AdapterPair[V]{}, false
	}

	text, err := NewFormatAdapter(desc.Kind, FormatText, desc.OID, codec)
	if err != nil {
		return AdapterPair[V]{}, false
	}
	binary, err := NewFormatAdapter(desc.Kind, FormatBinary, desc.OID, codec)
	if err != nil {
		return AdapterPair[V]{}, false
	}
	return AdapterPair[V]{Text: text, Binary: binary}, true
}
