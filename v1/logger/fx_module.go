package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the logger into an Fx-based application.
//
// It provides the NewLoggerClient factory to the dependency injection
// container and registers a shutdown hook that flushes buffered log entries.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(logger.NewConfig),
//	    // other modules...
//	)
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle registers an OnStop hook that calls Sync() on the
// underlying Zap logger so buffered entries are not lost on shutdown.
// Invoked automatically by FXModule.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Zap.Sync()
		},
	})
}
