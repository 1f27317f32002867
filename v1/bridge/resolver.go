package bridge

import (
	"context"
	"errors"
)

// TypeDescriptor is the resolved catalog entry for one vector kind.
// OID 0 marks an absent optional type.
type TypeDescriptor struct {
	Kind    Kind
	Name    string
	Schema  string
	OID     uint32
	Formats []Format
}

// Absent reports whether the type does not exist in the database.
func (d TypeDescriptor) Absent() bool {
	return d.OID == 0
}

// ResolveResult carries the outcome of ResolveAsync.
type ResolveResult struct {
	Descriptor TypeDescriptor
	Err        error
}

// Resolve looks up the type for kind in schema. An empty schema means
// DefaultSchema.
//
// A missing required type yields *TypeNotFoundError. A missing optional type
// yields a descriptor with OID 0 and a nil error. Every other lookup failure is
// returned as *UnexpectedLookupError.
func Resolve(ctx context.Context, lookup Lookup, kind Kind, schema string) (TypeDescriptor, error) {
	if schema == "" {
		schema = DefaultSchema
	}

	desc := TypeDescriptor{
		Kind:   kind,
		Name:   kind.TypeName(),
		Schema: schema,
	}

	oid, err := lookup.LookupType(ctx, desc.Name, schema)
	switch {
	case err == nil && oid != 0:
		desc.OID = oid
		desc.Formats = Formats()
		return desc, nil
	case err == nil, errors.Is(err, ErrUnknownType):
		if kind.Required() {
			return TypeDescriptor{}, &TypeNotFoundError{Name: desc.Name, Schema: schema}
		}
		return desc, nil
	default:
		return TypeDescriptor{}, &UnexpectedLookupError{Name: desc.Name, Schema: schema, Err: err}
	}
}

// ResolveAsync runs Resolve on a new goroutine. The channel receives exactly
// one result and is buffered, so callers may stop listening.
func ResolveAsync(ctx context.Context, lookup Lookup, kind Kind, schema string) <-chan ResolveResult {
	ch := make(chan ResolveResult, 1)
	go func() {
		desc, err := Resolve(ctx, lookup, kind, schema)
		ch <- ResolveResult{Descriptor: desc, Err: err}
	}()
	return ch
}
