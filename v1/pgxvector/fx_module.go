package pgxvector

import (
	"context"

	"github.com/Aleph-Alpha/roovector-go/v1/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// FXModule provides a *pgxpool.Pool with the vector types registered on every
// connection. It needs a config.Postgres; config.Registration, *logger.Logger,
// *metrics.Metrics and *tracer.Tracer are used when present.
var FXModule = fx.Module("pgxvector",
	fx.Provide(NewPoolWithDI),
	fx.Invoke(RegisterPoolLifecycle),
)

// PoolParams groups the dependencies of NewPoolWithDI.
type PoolParams struct {
	fx.In

	Config config.Postgres
	Bridge config.BridgeParams
}

// NewPoolWithDI builds the pool from injected configuration.
func NewPoolWithDI(params PoolParams) (*pgxpool.Pool, error) {
	return NewPool(context.Background(), params.Config, params.Bridge.Options(Library)...)
}

// RegisterPoolLifecycle closes the pool when the application stops.
func RegisterPoolLifecycle(lc fx.Lifecycle, pool *pgxpool.Pool) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			pool.Close()
			return nil
		},
	})
}
