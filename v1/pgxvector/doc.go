// Package pgxvector registers the roovector and roohalfvec types with pgx.
//
// Registration is per connection because every *pgx.Conn owns its own
// pgtype.Map. Pools should register from AfterConnect:
//
//	poolCfg, _ := pgxpool.ParseConfig(dsn)
//	poolCfg.AfterConnect = pgxvector.AfterConnect()
//	pool, _ := pgxpool.NewWithConfig(ctx, poolCfg)
//
// or use NewPool, which does the same from a config.Postgres section.
//
// After registration, vector.Vector and []float32 can be passed as arguments
// for roovector parameters, vector.HalfVector for roohalfvec parameters, and
// results scan into *vector.Vector, *vector.HalfVector or *[]float32:
//
//	var v vector.Vector
//	err := conn.QueryRow(ctx, "SELECT embedding FROM items WHERE id = $1", id).Scan(&v)
//
// The array types roovector[] and roohalfvec[] are registered as well, under
// their pg_type names _roovector and _roohalfvec, so ARRAY_AGG results scan
// into *[]vector.Vector and slices of vectors can be passed as parameters:
//
//	var all []vector.Vector
//	err := conn.QueryRow(ctx, "SELECT ARRAY_AGG(embedding) FROM items").Scan(&all)
//
// A database without roohalfvec is fine; only roovector is registered then.
// A database without roovector fails registration with an error matching
// bridge.ErrTypeNotFound.
package pgxvector
