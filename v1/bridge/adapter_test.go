package bridge

import (
	"testing"

	"github.com/Aleph-Alpha/roovector-go/v1/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAdaptersAbsent(t *testing.T) {
	_, ok := BuildAdapters(TypeDescriptor{Kind: KindHalfVector, Name: "roohalfvec"}, HalfVectorCodec)
	assert.False(t, ok)
}

func TestBuildAdaptersPair(t *testing.T) {
	pair, ok := BuildAdapters(TypeDescriptor{Kind: KindVector, OID: 5000}, VectorCodec)
	require.True(t, ok)
	require.NoError(t, pair.Validate())

	assert.Equal(t, uint32(5000), pair.OID())
	assert.Equal(t, KindVector, pair.Kind())
	assert.Equal(t, FormatText, pair.Text.Format())
	assert.Equal(t, FormatBinary, pair.Binary.Format())
	assert.Equal(t, []AdapterInfo{
		{Kind: KindVector, Format: FormatText, OID: 5000},
		{Kind: KindVector, Format: FormatBinary, OID: 5000},
	}, pair.Infos())

	a, ok := pair.Adapter(FormatBinary)
	require.True(t, ok)
	assert.Equal(t, pair.Binary.Info(), a.Info())
	_, ok = pair.Adapter(Format(7))
	assert.False(t, ok)
}

func TestNewFormatAdapterRejectsAbsentOID(t *testing.T) {
	_, err := NewFormatAdapter(KindVector, FormatText, 0, VectorCodec)
	assert.ErrorIs(t, err, ErrAbsentOID)
}

func TestNewFormatAdapterRejectsUnknownFormat(t *testing.T) {
	_, err := NewFormatAdapter(KindVector, Format(2), 1, VectorCodec)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestZeroPairIsInvalid(t *testing.T) {
	assert.ErrorIs(t, AdapterPair[vector.Vector]{}.Validate(), ErrAbsentOID)
}

func TestMismatchedPairIsInvalid(t *testing.T) {
	text, err := NewFormatAdapter(KindVector, FormatText, 1, VectorCodec)
	require.NoError(t, err)
	binary, err := NewFormatAdapter(KindVector, FormatBinary, 2, VectorCodec)
	require.NoError(t, err)

	assert.Error(t, AdapterPair[vector.Vector]{Text: text, Binary: binary}.Validate())
}

func TestVectorAdaptersRoundTrip(t *testing.T) {
	pair, ok := BuildAdapters(TypeDescriptor{Kind: KindVector, OID: 1}, VectorCodec)
	require.True(t, ok)

	v := vector.NewVector([]float32{1.5, -2, 1e-7, 3.4e38})
	for _, format := range Formats() {
		t.Run(format.String(), func(t *testing.T) {
			a, _ := pair.Adapter(format)
			buf, err := a.Encode(v, nil)
			require.NoError(t, err)

			got, err := a.Decode(buf)
			require.NoError(t, err)
			assert.True(t, v.Equal(got))
		})
	}
}

func TestHalfVectorAdaptersRoundTrip(t *testing.T) {
	pair, ok := BuildAdapters(TypeDescriptor{Kind: KindHalfVector, OID: 2}, HalfVectorCodec)
	require.True(t, ok)

	v := vector.NewHalfVector([]float32{0.1, 0.2, 1000.3})

	buf, err := pair.Binary.Encode(v, nil)
	require.NoError(t, err)
	got, err := pair.Binary.Decode(buf)
	require.NoError(t, err)
	assert.True(t, v.Round().Equal(got))

	buf, err = pair.Text.Encode(v, nil)
	require.NoError(t, err)
	assert.Equal(t, v.String(), string(buf))
	got, err = pair.Text.Decode(buf)
	require.NoError(t, err)
	assert.True(t, v.Equal(got))
}

func TestBinaryDecodeOwnsItsInput(t *testing.T) {
	pair, ok := BuildAdapters(TypeDescriptor{Kind: KindVector, OID: 1}, VectorCodec)
	require.True(t, ok)

	buf, err := pair.Binary.Encode(vector.NewVector([]float32{4, 5}), nil)
	require.NoError(t, err)

	got, err := pair.Binary.Decode(buf)
	require.NoError(t, err)
	clear(buf)
	assert.Equal(t, []float32{4, 5}, got.Slice())
}

func TestTextEncodeAppends(t *testing.T) {
	pair, ok := BuildAdapters(TypeDescriptor{Kind: KindVector, OID: 1}, VectorCodec)
	require.True(t, ok)

	buf, err := pair.Text.Encode(vector.NewVector([]float32{1}), []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "x[1]", string(buf))
}

func TestDecodeErrorsPropagate(t *testing.T) {
	pair, ok := BuildAdapters(TypeDescriptor{Kind: KindVector, OID: 1}, VectorCodec)
	require.True(t, ok)

	_, err := pair.Text.Decode([]byte("nope"))
	assert.ErrorIs(t, err, vector.ErrInvalidText)
	_, err = pair.Binary.Decode([]byte{1})
	assert.ErrorIs(t, err, vector.ErrInvalidBinary)
}
