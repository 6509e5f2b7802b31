package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/partnerforge/ragengine/v1/logger"
)

// FXModule configures distributed tracing for the application.
//
// It provides the Tracer through NewClient and registers a shutdown hook
// that flushes pending spans to the exporter.
//
// Usage:
//
//	app := fx.New(
//	    tracer.FXModule,
//	    fx.Provide(tracer.NewConfig),
//	    // other modules...
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		func(l *logger.Logger) Logger { return l },
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle registers an OnStop hook that gracefully shuts
// down the tracer provider. Invoked automatically by FXModule.
func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if t == nil || t.tracer == nil {
				return nil
			}
			t.logger.Info("shutting down tracer", nil, nil)
			return t.tracer.Shutdown(ctx)
		},
	})
}
