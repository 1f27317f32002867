package pgxvector

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/Aleph-Alpha/roovector-go/v1/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig turns a config.Postgres section into a pgxpool configuration
// whose connections register the vector types.
func PoolConfig(cfg config.Postgres, opts ...bridge.Option) (*pgxpool.Config, error) {
	conn := cfg.Connection
	// binary_parameters is a lib/pq setting; pgx would send it to the server.
	conn.BinaryParameters = false

	poolCfg, err := pgxpool.ParseConfig(conn.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing postgres connection config: %w", err)
	}

	pool := cfg.Pool.WithDefaults()
	poolCfg.MaxConns = int32(pool.MaxOpenConns)
	poolCfg.MaxConnLifetime = pool.ConnMaxLifetime
	poolCfg.AfterConnect = AfterConnect(opts...)
	return poolCfg, nil
}

// NewPool opens a pool and acquires one connection, so a database without
// roovector is reported here rather than on first use.
func NewPool(ctx context.Context, cfg config.Postgres, opts ...bridge.Option) (*pgxpool.Pool, error) {
	poolCfg, err := PoolConfig(cfg, opts...)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return pool, nil
}
