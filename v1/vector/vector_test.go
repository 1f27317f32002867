package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorText(t *testing.T) {
	v := NewVector([]float32{1, 2.5, -3, 0.1})

	assert.Equal(t, "[1,2.5,-3,0.1]", v.String())

	var got Vector
	require.NoError(t, got.Parse(v.String()))
	assert.True(t, v.Equal(got))
}

func TestVectorTextWhitespace(t *testing.T) {
	var v Vector
	require.NoError(t, v.Parse(" [ 1 , 2,3 ] "))
	assert.Equal(t, []float32{1, 2, 3}, v.Slice())
}

func TestVectorTextEmpty(t *testing.T) {
	var v Vector
	require.NoError(t, v.Parse("[]"))
	assert.Equal(t, 0, v.Dimensions())
	assert.Equal(t, "[]", v.String())
}

func TestVectorTextInvalid(t *testing.T) {
	for _, in := range []string{"", "1,2,3", "[1,2", "[1,,2]", "[a]"} {
		var v Vector
		err := v.Parse(in)
		assert.ErrorIs(t, err, ErrInvalidText, "input %q", in)
	}
}

func TestVectorBinary(t *testing.T) {
	v := NewVector([]float32{1, -2, float32(math.Pi), math.MaxFloat32, math.SmallestNonzeroFloat32})

	data, err := v.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, 4+4*5)
	assert.Equal(t, []byte{0, 5, 0, 0}, data[:4])

	var got Vector
	require.NoError(t, got.UnmarshalBinary(data))
	assert.True(t, v.Equal(got))
}

func TestVectorBinaryDoesNotAlias(t *testing.T) {
	data, err := NewVector([]float32{7, 8}).MarshalBinary()
	require.NoError(t, err)

	var got Vector
	require.NoError(t, got.UnmarshalBinary(data))
	for i := range data {
		data[i] = 0xff
	}
	assert.Equal(t, []float32{7, 8}, got.Slice())
}

func TestVectorAppendBinaryKeepsPrefix(t *testing.T) {
	buf, err := NewVector([]float32{1}).AppendBinary([]byte("xy"))
	require.NoError(t, err)
	assert.Equal(t, []byte("xy"), buf[:2])
	assert.Len(t, buf, 2+4+4)
}

func TestVectorBinaryInvalid(t *testing.T) {
	tests := map[string][]byte{
		"short header":   {0, 1},
		"truncated":      {0, 2, 0, 0, 0, 0, 0, 0},
		"trailing bytes": {0, 0, 0, 0, 1},
		"reserved set":   {0, 0, 0, 1},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			var v Vector
			assert.ErrorIs(t, v.UnmarshalBinary(data), ErrInvalidBinary)
		})
	}
}

func TestVectorTooManyDimensions(t *testing.T) {
	_, err := NewVector(make([]float32, MaxDimensions+1)).MarshalBinary()
	assert.ErrorIs(t, err, ErrTooManyDimensions)
}

func TestHalfVectorBinaryRoundsToHalfPrecision(t *testing.T) {
	v := NewHalfVector([]float32{1, 0.1, -2.5, 65504, 1e-8})

	data, err := v.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, 4+2*5)

	var got HalfVector
	require.NoError(t, got.UnmarshalBinary(data))

	assert.True(t, v.Round().Equal(got))
	assert.Equal(t, float32(1), got.Slice()[0])
	assert.InDelta(t, 0.1, got.Slice()[1], 1e-4)
	assert.Equal(t, float32(0), got.Slice()[4])

	// Rounded values survive a second trip unchanged.
	data2, err := got.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, data, data2)
}

func TestHalfVectorText(t *testing.T) {
	v := NewHalfVector([]float32{1, 2, 3})

	var got HalfVector
	require.NoError(t, got.UnmarshalText([]byte(v.String())))
	assert.True(t, v.Equal(got))
}

func TestHalfVectorBinaryInvalid(t *testing.T) {
	var v HalfVector
	// Four-byte elements are a roovector payload, not a roohalfvec one.
	data, err := NewVector([]float32{1}).MarshalBinary()
	require.NoError(t, err)
	assert.ErrorIs(t, v.UnmarshalBinary(data), ErrInvalidBinary)
}

func TestScanAndValue(t *testing.T) {
	v := NewVector([]float32{1, 2})
	val, err := v.Value()
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", val)

	var fromString, fromBytes Vector
	require.NoError(t, fromString.Scan("[1,2]"))
	require.NoError(t, fromBytes.Scan([]byte("[1,2]")))
	assert.True(t, v.Equal(fromString))
	assert.True(t, v.Equal(fromBytes))

	var h HalfVector
	require.NoError(t, h.Scan("[3]"))
	assert.Equal(t, []float32{3}, h.Slice())

	var unsupported *ErrUnsupportedSource
	assert.ErrorAs(t, fromString.Scan(42), &unsupported)
	assert.ErrorAs(t, h.Scan(nil), &unsupported)
}

func TestGormDataType(t *testing.T) {
	assert.Equal(t, "roovector", Vector{}.GormDataType())
	assert.Equal(t, "roohalfvec", HalfVector{}.GormDataType())
}
