package pqvector

import (
	"context"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
)

// Register resolves the vector types and installs their codecs in codecs.
func Register(ctx context.Context, codecs *Codecs, opts ...bridge.Option) (bridge.Outcome, error) {
	return bridge.Register(ctx, codecs, withLibrary(opts)...)
}

// RegisterAsync runs Register in the background.
func RegisterAsync(ctx context.Context, codecs *Codecs, opts ...bridge.Option) <-chan bridge.Result {
	return bridge.RegisterAsync(ctx, codecs, withLibrary(opts)...)
}

func withLibrary(opts []bridge.Option) []bridge.Option {
	return append([]bridge.Option{bridge.WithLibrary(Library)}, opts...)
}
