package pqvector

import (
	"context"

	"github.com/Aleph-Alpha/roovector-go/v1/config"
	"go.uber.org/fx"
)

// FXModule provides a *DB with the vector types registered and closes it on
// stop.
var FXModule = fx.Module("pqvector",
	fx.Provide(NewDBWithDI),
	fx.Invoke(RegisterDBLifecycle),
)

// DBParams groups the dependencies of NewDBWithDI.
type DBParams struct {
	fx.In

	Config config.Postgres
	Bridge config.BridgeParams
}

// NewDBWithDI opens the database from injected configuration.
func NewDBWithDI(params DBParams) (*DB, error) {
	return Open(context.Background(), params.Config, params.Bridge.Options(Library)...)
}

// RegisterDBLifecycle closes the pool when the application stops.
func RegisterDBLifecycle(lc fx.Lifecycle, db *DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
}
