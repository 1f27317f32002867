package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidText is returned when a text representation cannot be parsed.
	ErrInvalidText = errors.New("vector: invalid text representation")

	// ErrInvalidBinary is returned when a binary representation is truncated or malformed.
	ErrInvalidBinary = errors.New("vector: invalid binary representation")

	// ErrTooManyDimensions is returned when a value has more elements than the
	// binary header can describe.
	ErrTooManyDimensions = errors.New("vector: too many dimensions")
)

// ErrUnsupportedSource is returned by Scan when the driver hands over a type
// that carries no vector representation.
type ErrUnsupportedSource struct {
	Target string
	Source any
}

func (e *ErrUnsupportedSource) Error() string {
	return fmt.Sprintf("vector: cannot scan %T into %s", e.Source, e.Target)
}
