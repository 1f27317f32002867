package pqvector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/Aleph-Alpha/roovector-go/v1/config"
)

// DB is a lib/pq connection pool together with its vector codecs.
type DB struct {
	*sql.DB
	Codecs *Codecs
}

// Open connects with lib/pq, verifies the connection and registers the vector
// types. The pool is closed again when registration fails.
func Open(ctx context.Context, cfg config.Postgres, opts ...bridge.Option) (*DB, error) {
	db, err := sql.Open("postgres", cfg.Connection.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}

	pool := cfg.Pool.WithDefaults()
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	codecs := NewCodecs(NewLookup(db), WithBinaryParameters(cfg.Connection.BinaryParameters))
	if _, err := Register(ctx, codecs, opts...); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{DB: db, Codecs: codecs}, nil
}
