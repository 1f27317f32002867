package bridge

import "fmt"

// DefaultSchema is used when no schema is configured.
const DefaultSchema = "public"

// Kind identifies one of the two vector column types.
type Kind int

const (
	// KindVector is the full-precision roovector type. It must exist.
	KindVector Kind = iota
	// KindHalfVector is the half-precision roohalfvec type. It may be missing.
	KindHalfVector
)

// TypeName returns the PostgreSQL type name for the kind.
func (k Kind) TypeName() string {
	switch k {
	case KindVector:
		return "roovector"
	case KindHalfVector:
		return "roohalfvec"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Required reports whether registration fails when the type does not exist.
func (k Kind) Required() bool {
	return k == KindVector
}

func (k Kind) String() string {
	return k.TypeName()
}

// Format is a PostgreSQL wire format. The values match the protocol format codes.
type Format int16

const (
	FormatText   Format = 0
	FormatBinary Format = 1
)

// Formats lists every wire format an adapter pair covers. Each call returns a
// new slice, so callers may keep or modify it.
func Formats() []Format {
	return []Format{FormatText, FormatBinary}
}

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	default:
		return fmt.Sprintf("format(%d)", int16(f))
	}
}
