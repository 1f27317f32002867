package bridge

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned by Lookup implementations when the catalog has
	// no type with the requested name in the requested schema. It is the only
	// lookup failure that counts as absence of the optional type.
	ErrUnknownType = errors.New("unknown type")

	// ErrTypeNotFound matches every *TypeNotFoundError.
	ErrTypeNotFound = errors.New("type not found in the database")

	// ErrAbsentOID is returned when an adapter would be keyed by OID 0.
	ErrAbsentOID = errors.New("type has no resolved OID")

	// ErrUnsupportedFormat is returned for wire formats other than text and binary.
	ErrUnsupportedFormat = errors.New("unsupported wire format")
)

// TypeNotFoundError reports that the required vector type does not exist.
type TypeNotFoundError struct {
	Name   string
	Schema string
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("%s type not found in the database (schema %q)", e.Name, e.Schema)
}

func (e *TypeNotFoundError) Is(target error) bool {
	return target == ErrTypeNotFound
}

// UnexpectedLookupError wraps a lookup failure other than "unknown type", such
// as a permission error or a broken connection.
type UnexpectedLookupError struct {
	Name   string
	Schema string
	Err    error
}

func (e *UnexpectedLookupError) Error() string {
	return fmt.Sprintf("looking up type %s.%s: %v", e.Schema, e.Name, e.Err)
}

func (e *UnexpectedLookupError) Unwrap() error { return e.Err }

// RegistryInstallError reports that a host registry rejected an adapter.
type RegistryInstallError struct {
	Kind Kind
	OID  uint32
	Err  error
}

func (e *RegistryInstallError) Error() string {
	return fmt.Sprintf("installing %s adapters for oid %d: %v", e.Kind, e.OID, e.Err)
}

func (e *RegistryInstallError) Unwrap() error { return e.Err }

// IsTypeNotFound reports whether err is a missing required type.
func IsTypeNotFound(err error) bool {
	return errors.Is(err, ErrTypeNotFound)
}

// IsUnexpectedLookup reports whether err is a lookup failure other than absence.
func IsUnexpectedLookup(err error) bool {
	var target *UnexpectedLookupError
	return errors.As(err, &target)
}

// IsRegistryInstall reports whether err came from installing adapters.
func IsRegistryInstall(err error) bool {
	var target *RegistryInstallError
	return errors.As(err, &target)
}
