package postgres

import (
	"context"
	"sync"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/Aleph-Alpha/roovector-go/v1/config"
	"go.uber.org/fx"
)

// FXModule provides *Postgres and Client, and runs the connection monitor
// for the lifetime of the application.
//
//	app := fx.New(
//	    fx.Supply(cfg),
//	    config.FXModule,
//	    logger.FXModule,
//	    postgres.FXModule,
//	)
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewPostgresClientWithDI,
		fx.Annotate(
			ProvideClient,
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// ProvideClient exposes *Postgres as Client.
func ProvideClient(pg *Postgres) Client {
	return pg
}

// PostgresParams groups the dependencies of NewPostgresClientWithDI.
type PostgresParams struct {
	fx.In

	Config config.Postgres
	Bridge config.BridgeParams
}

// NewPostgresClientWithDI connects using injected configuration. The injected
// logger, metrics and tracer, when present, are used for vector registration
// on every connection.
func NewPostgresClientWithDI(params PostgresParams) (*Postgres, error) {
	// A nil *logger.Logger must not become a non-nil bridge.Logger.
	var log bridge.Logger
	if params.Bridge.Logger != nil {
		log = params.Bridge.Logger
	}
	return NewPostgres(params.Config, log, params.Bridge.Options("gorm")...)
}

// PostgresLifeCycleParams groups the dependencies of RegisterPostgresLifecycle.
type PostgresLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Postgres  *Postgres
}

// RegisterPostgresLifecycle starts MonitorConnection and RetryConnection on
// application start. On stop it signals both loops, waits for them and closes
// the pool.
func RegisterPostgresLifecycle(params PostgresLifeCycleParams) {
	wg := &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				params.Postgres.MonitorConnection(ctx)
			}()
			go func() {
				defer wg.Done()
				params.Postgres.RetryConnection(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			params.Postgres.closeShutdownOnce.Do(func() {
				close(params.Postgres.shutdownSignal)
			})
			cancel()
			wg.Wait()
			return params.Postgres.closeGorm(params.Postgres.DB())
		},
	})
}
