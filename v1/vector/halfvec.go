package vector

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/x448/float16"
)

// HalfVector is a roohalfvec value.
//
// Elements are kept as float32 and rounded to binary16 (round-to-nearest-even)
// when encoded, so a value read back from the database equals Round() of the
// value that was written.
type HalfVector struct {
	vec []float32
}

// NewHalfVector wraps vec. The slice is not copied.
func NewHalfVector(vec []float32) HalfVector {
	return HalfVector{vec: vec}
}

// Slice returns the elements of the vector.
func (v HalfVector) Slice() []float32 {
	return v.vec
}

// Dimensions returns the number of elements.
func (v HalfVector) Dimensions() int {
	return len(v.vec)
}

// Round returns a copy of v with every element rounded to the nearest binary16 value.
func (v HalfVector) Round() HalfVector {
	out := make([]float32, len(v.vec))
	for i, f := range v.vec {
		out[i] = float16.Fromfloat32(f).Float32()
	}
	return HalfVector{vec: out}
}

// Equal reports whether both vectors hold the same elements.
func (v HalfVector) Equal(other HalfVector) bool {
	return slices.Equal(v.vec, other.vec)
}

// String returns the text representation, e.g. "[1,2,3]".
func (v HalfVector) String() string {
	return string(appendText(nil, v.vec))
}

// MarshalText implements encoding.TextMarshaler.
func (v HalfVector) MarshalText() ([]byte, error) {
	return appendText(nil, v.vec), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *HalfVector) UnmarshalText(text []byte) error {
	vec, err := parseText(string(text))
	if err != nil {
		return err
	}
	v.vec = vec
	return nil
}

// Parse parses the text representation into v.
func (v *HalfVector) Parse(s string) error {
	return v.UnmarshalText([]byte(s))
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (v HalfVector) MarshalBinary() ([]byte, error) {
	return v.AppendBinary(nil)
}

// AppendBinary appends the binary representation of v to buf.
func (v HalfVector) AppendBinary(buf []byte) ([]byte, error) {
	dim := len(v.vec)
	if dim > MaxDimensions {
		return nil, fmt.Errorf("%w: %d", ErrTooManyDimensions, dim)
	}

	buf = slices.Grow(buf, headerSize+2*dim)
	buf = binary.BigEndian.AppendUint16(buf, uint16(dim))
	buf = binary.BigEndian.AppendUint16(buf, 0)
	for _, f := range v.vec {
		buf = binary.BigEndian.AppendUint16(buf, float16.Fromfloat32(f).Bits())
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The result does not
// reference data.
func (v *HalfVector) UnmarshalBinary(data []byte) error {
	dim, err := readHeader(data, 2)
	if err != nil {
		return err
	}

	vec := make([]float32, dim)
	for i := range vec {
		off := headerSize + 2*i
		vec[i] = float16.Frombits(binary.BigEndian.Uint16(data[off : off+2])).Float32()
	}
	v.vec = vec
	return nil
}
