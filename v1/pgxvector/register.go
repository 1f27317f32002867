package pgxvector

import (
	"context"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/jackc/pgx/v5"
)

// RegisterTypes looks up roovector and roohalfvec on conn and installs their
// codecs in conn's type map. Options are applied after the default library
// label, so WithLibrary can override it.
func RegisterTypes(ctx context.Context, conn Conn, opts ...bridge.Option) (bridge.Outcome, error) {
	return bridge.Register(ctx, newHost(conn), withLibrary(opts)...)
}

// RegisterTypesAsync runs RegisterTypes in the background. conn must not be
// used by the caller until the result has been received.
func RegisterTypesAsync(ctx context.Context, conn Conn, opts ...bridge.Option) <-chan bridge.Result {
	return bridge.RegisterAsync(ctx, newHost(conn), withLibrary(opts)...)
}

// AfterConnect returns a hook for pgxpool.Config.AfterConnect and
// stdlib.OptionAfterConnect that registers the vector types on every new
// connection. A failed registration discards the connection.
func AfterConnect(opts ...bridge.Option) func(context.Context, *pgx.Conn) error {
	return func(ctx context.Context, conn *pgx.Conn) error {
		_, err := RegisterTypes(ctx, conn, opts...)
		return err
	}
}

func withLibrary(opts []bridge.Option) []bridge.Option {
	return append([]bridge.Option{bridge.WithLibrary(Library)}, opts...)
}
