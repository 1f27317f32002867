package pqvector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/lib/pq"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewLookup returns a bridge.Lookup that reads pg_type through q.
func NewLookup(q Querier) bridge.Lookup {
	return catalog{q: q}
}

type catalog struct {
	q Querier
}

func (c catalog) LookupType(ctx context.Context, name, schema string) (uint32, error) {
	// lib/pq has no array codecs for custom types, so typarray is not used.
	var oid, arrayOID uint32
	err := c.q.QueryRowContext(ctx, bridge.TypeOIDQuery, name, schema).Scan(&oid, &arrayOID)
	return oid, classifyLookupError(schema, name, err)
}

// classifyLookupError maps an empty result and undefined_object to
// bridge.ErrUnknownType and keeps every other error as it is.
func classifyLookupError(schema, name string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.Is(err, sql.ErrNoRows) || (errors.As(err, &pqErr) && string(pqErr.Code) == bridge.UndefinedObjectCode) {
		return unknownType(schema, name)
	}
	return fmt.Errorf("looking up %s.%s: %w", schema, name, err)
}
