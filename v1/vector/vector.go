package vector

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// MaxDimensions is the largest dimension count the binary header can carry.
const MaxDimensions = math.MaxUint16

const headerSize = 4

// Vector is a roovector value.
type Vector struct {
	vec []float32
}

// NewVector wraps vec. The slice is not copied.
func NewVector(vec []float32) Vector {
	return Vector{vec: vec}
}

// Slice returns the elements of the vector.
func (v Vector) Slice() []float32 {
	return v.vec
}

// Dimensions returns the number of elements.
func (v Vector) Dimensions() int {
	return len(v.vec)
}

// Equal reports whether both vectors hold the same elements.
func (v Vector) Equal(other Vector) bool {
	return slices.Equal(v.vec, other.vec)
}

// String returns the text representation, e.g. "[1,2,3]".
func (v Vector) String() string {
	return string(appendText(nil, v.vec))
}

// MarshalText implements encoding.TextMarshaler.
func (v Vector) MarshalText() ([]byte, error) {
	return appendText(nil, v.vec), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Vector) UnmarshalText(text []byte) error {
	vec, err := parseText(string(text))
	if err != nil {
		return err
	}
	v.vec = vec
	return nil
}

// Parse parses the text representation into v.
func (v *Vector) Parse(s string) error {
	return v.UnmarshalText([]byte(s))
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (v Vector) MarshalBinary() ([]byte, error) {
	return v.AppendBinary(nil)
}

// AppendBinary appends the binary representation of v to buf.
func (v Vector) AppendBinary(buf []byte) ([]byte, error) {
	dim := len(v.vec)
	if dim > MaxDimensions {
		return nil, fmt.Errorf("%w: %d", ErrTooManyDimensions, dim)
	}

	buf = slices.Grow(buf, headerSize+4*dim)
	buf = binary.BigEndian.AppendUint16(buf, uint16(dim))
	buf = binary.BigEndian.AppendUint16(buf, 0)
	for _, f := range v.vec {
		buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The result does not
// reference data.
func (v *Vector) UnmarshalBinary(data []byte) error {
	dim, err := readHeader(data, 4)
	if err != nil {
		return err
	}

	vec := make([]float32, dim)
	for i := range vec {
		off := headerSize + 4*i
		vec[i] = math.Float32frombits(binary.BigEndian.Uint32(data[off : off+4]))
	}
	v.vec = vec
	return nil
}

// readHeader validates the binary header and payload length for elements of
// the given width and returns the dimension count.
func readHeader(data []byte, width int) (int, error) {
	if len(data) < headerSize {
		return 0, fmt.Errorf("%w: need at least %d bytes, got %d", ErrInvalidBinary, headerSize, len(data))
	}

	dim := int(binary.BigEndian.Uint16(data[0:2]))
	if unused := binary.BigEndian.Uint16(data[2:4]); unused != 0 {
		return 0, fmt.Errorf("%w: reserved header field is %d", ErrInvalidBinary, unused)
	}

	if want := headerSize + width*dim; len(data) != want {
		return 0, fmt.Errorf("%w: expected %d bytes for %d dimensions, got %d", ErrInvalidBinary, want, dim, len(data))
	}
	return dim, nil
}

func appendText(buf []byte, vec []float32) []byte {
	buf = append(buf, '[')
	for i, f := range vec {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendFloat(buf, float64(f), 'f', -1, 32)
	}
	return append(buf, ']')
}

func parseText(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("%w: %q", ErrInvalidText, s)
	}

	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return []float32{}, nil
	}

	parts := strings.Split(body, ",")
	vec := make([]float32, len(parts))
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrInvalidText, i, err)
		}
		vec[i] = float32(f)
	}
	return vec, nil
}
