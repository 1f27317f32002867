package bridge

import "github.com/Aleph-Alpha/roovector-go/v1/vector"

var (
	// VectorCodec converts roovector values.
	VectorCodec = codecFor[vector.Vector]()

	// HalfVectorCodec converts roohalfvec values.
	HalfVectorCodec = codecFor[vector.HalfVector]()
)

type wireValue interface {
	String() string
	AppendBinary(buf []byte) ([]byte, error)
}

type wireValuePtr[V any] interface {
	*V
	Parse(s string) error
	UnmarshalBinary(data []byte) error
}

func codecFor[V wireValue, P wireValuePtr[V]]() ValueCodec[V] {
	return ValueCodec[V]{
		ToText: func(v V) (string, error) {
			return v.String(), nil
		},
		FromText: func(s string) (V, error) {
			var v V
			err := P(&v).Parse(s)
			return v, err
		},
		ToBinary: func(v V, buf []byte) ([]byte, error) {
			return v.AppendBinary(buf)
		},
		FromBinary: func(data []byte) (V, error) {
			var v V
			err := P(&v).UnmarshalBinary(data)
			return v, err
		},
	}
}
