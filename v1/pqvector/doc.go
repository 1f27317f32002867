// Package pqvector registers the roovector and roohalfvec types for
// database/sql programs using lib/pq.
//
// lib/pq has no type registry of its own, so this package keeps one: Codecs
// maps each type OID to an encoder and a decoder per wire format. SetTypeCodec
// fills it one type at a time; Register fills it with the vector adapters.
//
//	db, err := pqvector.Open(ctx, cfg.Postgres, bridge.WithSchema("vectors"))
//	if err != nil {
//		return err
//	}
//	_, err = db.ExecContext(ctx, "INSERT INTO items (embedding) VALUES ($1)",
//		db.Codecs.Arg(vector.NewVector(embedding)))
//
//	var v vector.Vector
//	err = db.QueryRowContext(ctx, "SELECT embedding FROM items LIMIT 1").
//		Scan(db.Codecs.Dest(&v))
//
// With binary_parameters enabled in the connection settings, Arg sends the
// binary representation. Results always arrive in text format.
package pqvector
