package pgxvector

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/Aleph-Alpha/roovector-go/v1/config"
	"github.com/Aleph-Alpha/roovector-go/v1/vector"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	vectorOID      = 16500
	halfOID        = 16501
	vectorArrayOID = 16502
	halfArrayOID   = 16503
)

type fakeRow struct {
	oid      uint32
	arrayOID uint32
	err      error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*uint32) = r.oid
	if len(dest) > 1 {
		*dest[1].(*uint32) = r.arrayOID
	}
	return nil
}

// fakeConn answers catalog lookups from a map and keeps a real type map.
type fakeConn struct {
	mu      sync.Mutex
	oids    map[string]uint32
	arrays  map[string]uint32
	errs    map[string]error
	schemas []string
	typeMap *pgtype.Map
}

func newFakeConn(oids map[string]uint32) *fakeConn {
	return &fakeConn{oids: oids, arrays: map[string]uint32{}, errs: map[string]error{}, typeMap: pgtype.NewMap()}
}

func (c *fakeConn) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sql != bridge.TypeOIDQuery {
		return fakeRow{err: errors.New("unexpected query")}
	}
	name, schema := args[0].(string), args[1].(string)
	c.schemas = append(c.schemas, schema)

	if err, ok := c.errs[name]; ok {
		return fakeRow{err: err}
	}
	oid, ok := c.oids[name]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{oid: oid, arrayOID: c.arrays[name]}
}

func (c *fakeConn) TypeMap() *pgtype.Map {
	return c.typeMap
}

func bothTypes() map[string]uint32 {
	return map[string]uint32{"roovector": vectorOID, "roohalfvec": halfOID}
}

func TestRegisterTypesBothPresent(t *testing.T) {
	conn := newFakeConn(bothTypes())

	outcome, err := RegisterTypes(context.Background(), conn)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Count(bridge.KindVector))
	assert.Equal(t, 2, outcome.Count(bridge.KindHalfVector))

	typ, ok := conn.TypeMap().TypeForName("roovector")
	require.True(t, ok)
	assert.Equal(t, uint32(vectorOID), typ.OID)

	typ, ok = conn.TypeMap().TypeForName("roohalfvec")
	require.True(t, ok)
	assert.Equal(t, uint32(halfOID), typ.OID)

	typ, ok = conn.TypeMap().TypeForValue(vector.Vector{})
	require.True(t, ok)
	assert.Equal(t, uint32(vectorOID), typ.OID)

	typ, ok = conn.TypeMap().TypeForValue([]float32{1})
	require.True(t, ok)
	assert.Equal(t, uint32(vectorOID), typ.OID)
}

func TestRegisterTypesArrays(t *testing.T) {
	conn := newFakeConn(bothTypes())
	conn.arrays = map[string]uint32{"roovector": vectorArrayOID, "roohalfvec": halfArrayOID}

	_, err := RegisterTypes(context.Background(), conn)
	require.NoError(t, err)
	m := conn.TypeMap()

	typ, ok := m.TypeForName("_roovector")
	require.True(t, ok)
	assert.Equal(t, uint32(vectorArrayOID), typ.OID)

	typ, ok = m.TypeForName("_roohalfvec")
	require.True(t, ok)
	assert.Equal(t, uint32(halfArrayOID), typ.OID)

	typ, ok = m.TypeForValue([]vector.Vector{})
	require.True(t, ok)
	assert.Equal(t, uint32(vectorArrayOID), typ.OID)

	var scanned []vector.Vector
	require.NoError(t, m.Scan(vectorArrayOID, pgtype.TextFormatCode, []byte(`{"[1,2]","[3,4]"}`), &scanned))
	require.Len(t, scanned, 2)
	assert.Equal(t, []float32{1, 2}, scanned[0].Slice())
	assert.Equal(t, []float32{3, 4}, scanned[1].Slice())

	in := []vector.HalfVector{vector.NewHalfVector([]float32{0.5, 1}), vector.NewHalfVector([]float32{-2})}
	for _, format := range []int16{pgtype.TextFormatCode, pgtype.BinaryFormatCode} {
		buf, err := m.Encode(halfArrayOID, format, in, nil)
		require.NoError(t, err)

		var out []vector.HalfVector
		require.NoError(t, m.Scan(halfArrayOID, format, buf, &out))
		require.Len(t, out, 2)
		assert.True(t, in[0].Equal(out[0]), "format %d", format)
		assert.True(t, in[1].Equal(out[1]), "format %d", format)
	}
}

func TestRegisterTypesWithoutArrayType(t *testing.T) {
	conn := newFakeConn(bothTypes())

	_, err := RegisterTypes(context.Background(), conn)
	require.NoError(t, err)

	_, ok := conn.TypeMap().TypeForName("_roovector")
	assert.False(t, ok)
}

func TestRegisterTypesWithoutHalfVector(t *testing.T) {
	conn := newFakeConn(map[string]uint32{"roovector": vectorOID})

	outcome, err := RegisterTypes(context.Background(), conn)
	require.NoError(t, err)
	assert.Len(t, outcome.Adapters, 2)

	_, ok := conn.TypeMap().TypeForName("roohalfvec")
	assert.False(t, ok)
}

func TestRegisterTypesUndefinedObjectIsAbsent(t *testing.T) {
	conn := newFakeConn(map[string]uint32{"roovector": vectorOID})
	conn.errs["roohalfvec"] = &pgconn.PgError{Code: bridge.UndefinedObjectCode, Message: `type "roohalfvec" does not exist`}

	_, err := RegisterTypes(context.Background(), conn)
	require.NoError(t, err)
}

func TestRegisterTypesWithoutVector(t *testing.T) {
	conn := newFakeConn(map[string]uint32{"roohalfvec": halfOID})

	_, err := RegisterTypes(context.Background(), conn)
	require.ErrorIs(t, err, bridge.ErrTypeNotFound)

	_, ok := conn.TypeMap().TypeForName("roovector")
	assert.False(t, ok)
	_, ok = conn.TypeMap().TypeForName("roohalfvec")
	assert.False(t, ok)
}

func TestRegisterTypesLookupFailure(t *testing.T) {
	conn := newFakeConn(map[string]uint32{"roovector": vectorOID})
	conn.errs["roohalfvec"] = errors.New("connection reset")

	outcome, err := RegisterTypes(context.Background(), conn)
	require.Error(t, err)
	assert.True(t, bridge.IsUnexpectedLookup(err))
	assert.Equal(t, 2, outcome.Count(bridge.KindVector))
}

func TestRegisterTypesSchema(t *testing.T) {
	conn := newFakeConn(bothTypes())

	_, err := RegisterTypes(context.Background(), conn, bridge.WithSchema("vectors"))
	require.NoError(t, err)
	assert.Equal(t, []string{"vectors", "vectors"}, conn.schemas)
}

func TestRegisterTypesAsync(t *testing.T) {
	conn := newFakeConn(bothTypes())

	res := <-RegisterTypesAsync(context.Background(), conn)
	require.NoError(t, res.Err)
	assert.Len(t, res.Outcome.Adapters, 4)
}

func TestRegisterTypesIdempotent(t *testing.T) {
	conn := newFakeConn(bothTypes())

	for i := 0; i < 3; i++ {
		_, err := RegisterTypes(context.Background(), conn)
		require.NoError(t, err)
	}

	typ, ok := conn.TypeMap().TypeForOID(vectorOID)
	require.True(t, ok)
	assert.Equal(t, "roovector", typ.Name)
}

func TestPoolConfig(t *testing.T) {
	cfg := config.Postgres{
		Connection: config.Connection{
			Host:             "localhost",
			Port:             "5432",
			User:             "app",
			DbName:           "search",
			SSLMode:          "disable",
			BinaryParameters: true,
		},
		Pool: config.Pool{MaxOpenConns: 7},
	}

	poolCfg, err := PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(7), poolCfg.MaxConns)
	assert.Equal(t, config.DefaultConnMaxLifetime, poolCfg.MaxConnLifetime)
	assert.NotNil(t, poolCfg.AfterConnect)
	assert.NotContains(t, poolCfg.ConnConfig.RuntimeParams, "binary_parameters")
	assert.Equal(t, "search", poolCfg.ConnConfig.Database)
}
