package pgxvector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/Aleph-Alpha/roovector-go/v1/vector"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// Library is the name registrations through this package are labelled with.
const Library = "pgx"

// Conn is the part of *pgx.Conn registration needs.
type Conn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	TypeMap() *pgtype.Map
}

var _ Conn = (*pgx.Conn)(nil)

// host adapts a connection's type map to bridge.Host. LookupType remembers the
// array OID of each type it resolves so the install step can register
// roovector[] and roohalfvec[] next to the element type.
type host struct {
	conn Conn

	mu     sync.Mutex
	arrays map[string]uint32
}

var _ bridge.Host = (*host)(nil)

func newHost(conn Conn) *host {
	return &host{conn: conn, arrays: map[string]uint32{}}
}

func (h *host) LookupType(ctx context.Context, name, schema string) (uint32, error) {
	var oid, arrayOID uint32
	err := h.conn.QueryRow(ctx, bridge.TypeOIDQuery, name, schema).Scan(&oid, &arrayOID)
	if err == nil {
		h.mu.Lock()
		h.arrays[name] = arrayOID
		h.mu.Unlock()
		return oid, nil
	}

	var pgErr *pgconn.PgError
	if errors.Is(err, pgx.ErrNoRows) || (errors.As(err, &pgErr) && pgErr.Code == bridge.UndefinedObjectCode) {
		return 0, fmt.Errorf("%s.%s: %w", schema, name, bridge.ErrUnknownType)
	}
	return 0, err
}

func (h *host) InstallVector(pair bridge.AdapterPair[vector.Vector]) error {
	if err := pair.Validate(); err != nil {
		return err
	}
	name := bridge.KindVector.TypeName()
	m := h.conn.TypeMap()
	elem := &pgtype.Type{Name: name, OID: pair.OID(), Codec: NewVectorCodec(pair)}
	m.RegisterType(elem)
	m.RegisterDefaultPgType(vector.Vector{}, name)
	m.RegisterDefaultPgType([]float32(nil), name)

	if h.registerArray(m, elem) {
		m.RegisterDefaultPgType([]vector.Vector(nil), arrayTypeName(name))
	}
	return nil
}

func (h *host) InstallHalfVector(pair bridge.AdapterPair[vector.HalfVector]) error {
	if err := pair.Validate(); err != nil {
		return err
	}
	name := bridge.KindHalfVector.TypeName()
	m := h.conn.TypeMap()
	elem := &pgtype.Type{Name: name, OID: pair.OID(), Codec: NewHalfVectorCodec(pair)}
	m.RegisterType(elem)
	m.RegisterDefaultPgType(vector.HalfVector{}, name)

	if h.registerArray(m, elem) {
		m.RegisterDefaultPgType([]vector.HalfVector(nil), arrayTypeName(name))
	}
	return nil
}

// registerArray registers the array type of elem when the catalog reported one.
func (h *host) registerArray(m *pgtype.Map, elem *pgtype.Type) bool {
	h.mu.Lock()
	oid := h.arrays[elem.Name]
	h.mu.Unlock()
	if oid == 0 {
		return false
	}

	m.RegisterType(&pgtype.Type{
		Name:  arrayTypeName(elem.Name),
		OID:   oid,
		Codec: &pgtype.ArrayCodec{ElementType: elem},
	})
	return true
}

// arrayTypeName follows the pg_type convention of prefixing array types with an underscore.
func arrayTypeName(name string) string {
	return "_" + name
}
