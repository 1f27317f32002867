package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the tracer into an fx application. It builds a *Tracer from
// the tracer.Config in the graph and flushes it when the application stops.
//
// The module:
// 1. Provides *Tracer through NewClient
// 2. Invokes RegisterTracerLifecycle so pending spans are exported on shutdown
//
// Registration spans only reach the exporter when the database modules are
// given the tracer. config.BridgeParams picks it up automatically:
//
//	app := fx.New(
//	    fx.Supply(cfg),
//	    config.FXModule,   // provides tracer.Config
//	    tracer.FXModule,
//	    pgxvector.FXModule, // registration spans use the provided tracer
//	)
//	app.Run()
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle appends an OnStop hook that shuts the tracer
// provider down. Shutdown flushes the batch exporter, so spans from the last
// registrations are not lost when the process exits.
//
// Parameters:
//   - lc: the fx lifecycle to hook into
//   - tracer: the tracer built by NewClient; a nil tracer is ignored
//
// FXModule invokes it. Call it directly only when *Tracer is provided by
// other means:
//
//	fx.New(
//	    fx.Provide(func() (*tracer.Tracer, error) { return tracer.NewClient(cfg) }),
//	    fx.Invoke(tracer.RegisterTracerLifecycle),
//	)
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tracer.Shutdown(ctx)
		},
	})
}
