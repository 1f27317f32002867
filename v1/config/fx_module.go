package config

import (
	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/Aleph-Alpha/roovector-go/v1/logger"
	"github.com/Aleph-Alpha/roovector-go/v1/metrics"
	"github.com/Aleph-Alpha/roovector-go/v1/tracer"
	"go.uber.org/fx"
)

// FXModule splits a supplied Config into the per-component sections so the
// logger, metrics, tracer and database modules can consume them.
//
//	cfg, err := config.Load("roovector.yaml")
//	app := fx.New(
//	    fx.Supply(cfg),
//	    config.FXModule,
//	    logger.FXModule,
//	    pgxvector.FXModule,
//	)
var FXModule = fx.Module("config",
	fx.Provide(Sections),
)

// Sections returns the component sections of cfg.
func Sections(cfg Config) (logger.Config, metrics.Config, tracer.Config, Postgres, Registration) {
	return cfg.Logger, cfg.Metrics, cfg.Tracer, cfg.Postgres, cfg.Registration
}

var _ bridge.ContextLogger = (*logger.Logger)(nil)

// BridgeParams collects the optional collaborators of a registration call.
type BridgeParams struct {
	fx.In

	Registration Registration     `optional:"true"`
	Logger       *logger.Logger   `optional:"true"`
	Metrics      *metrics.Metrics `optional:"true"`
	Tracer       *tracer.Tracer   `optional:"true"`
}

// Options converts p into bridge options for the named client library.
// Missing collaborators are left at the bridge defaults.
func (p BridgeParams) Options(library string) []bridge.Option {
	opts := []bridge.Option{
		bridge.WithLibrary(library),
		bridge.WithSchema(p.Registration.Schema),
	}
	// A nil *Logger stored in the interface would not be treated as absent.
	if p.Logger != nil {
		opts = append(opts, bridge.WithLogger(p.Logger))
	}
	if p.Metrics != nil {
		opts = append(opts, bridge.WithObserver(p.Metrics))
	}
	if p.Tracer != nil {
		opts = append(opts, bridge.WithTracer(p.Tracer.Tracer()))
	}
	return opts
}
