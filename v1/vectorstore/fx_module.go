package vectorstore

import (
	"context"

	"go.uber.org/fx"

	"github.com/partnerforge/ragengine/v1/logger"
)

// FXModule wires the vector store client into Fx.
//
// It provides:
//   - *Config  (NewConfig)
//   - *Client  (NewClient)
//
// and registers lifecycle hooks: Initialize on start (collection bootstrap
// plus payload indexes) and Close on stop.
var FXModule = fx.Module(
	"vectorstore",

	fx.Provide(
		NewConfig,
		func(l *logger.Logger) Logger { return l },
		NewClient,
	),

	fx.Invoke(RegisterStoreLifecycle),
)

// RegisterStoreLifecycle boots the collection on startup and closes the
// client on shutdown. Invoked automatically by FXModule.
func RegisterStoreLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Initialize(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
