package embedding

import (
	"context"

	"go.uber.org/fx"

	"github.com/partnerforge/ragengine/v1/logger"
)

// FXModule wires the embedding client into Fx.
//
// It provides:
//   - *Config  (NewConfig)
//   - *Client  (NewClient, with the application logger adapted to the
//     package-local Logger interface)
//
// and registers a shutdown hook releasing provider resources.
var FXModule = fx.Module(
	"embedding",

	fx.Provide(
		NewConfig,
		func(l *logger.Logger) Logger { return l },
		NewClient,
	),

	fx.Invoke(RegisterEmbeddingLifecycle),
)

// RegisterEmbeddingLifecycle ensures the Client (and its provider) are
// cleaned up on application shutdown.
func RegisterEmbeddingLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
