package bridge

import (
	"context"

	"github.com/Aleph-Alpha/roovector-go/v1/vector"
)

// TypeOIDQuery resolves a type name within a schema to its OID and the OID of
// its array type (typarray, 0 when there is none). Both supported drivers
// accept $n placeholders.
const TypeOIDQuery = `SELECT t.oid, t.typarray FROM pg_catalog.pg_type t ` +
	`JOIN pg_catalog.pg_namespace n ON n.oid = t.typnamespace ` +
	`WHERE t.typname = $1 AND n.nspname = $2`

// UndefinedObjectCode is the SQLSTATE PostgreSQL raises for unknown types.
// Lookup implementations treat it like an empty catalog result.
const UndefinedObjectCode = "42704"

// Lookup resolves a type name to its OID.
//
//go:generate mockgen -source=host.go -destination=mock_host.go -package=bridge
type Lookup interface {
	// LookupType returns the OID of name in schema. When the type does not
	// exist the returned error must match ErrUnknownType.
	LookupType(ctx context.Context, name, schema string) (uint32, error)
}

// Host is a client library registry the bridge can populate.
type Host interface {
	Lookup

	// InstallVector installs both roovector adapters. Implementations must
	// install the pair or nothing.
	InstallVector(pair AdapterPair[vector.Vector]) error

	// InstallHalfVector installs both roohalfvec adapters. Implementations must
	// install the pair or nothing.
	InstallHalfVector(pair AdapterPair[vector.HalfVector]) error
}
