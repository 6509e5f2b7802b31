package metrics

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/partnerforge/ragengine/v1/logger"
)

// FXModule integrates the Prometheus metrics server into an Fx application.
//
// It provides NewMetrics to the dependency injection container and manages
// startup and graceful shutdown of the /metrics HTTP server.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(metrics.NewConfig),
//	    // other modules...
//	)
//
// Dependencies required by this module:
//   - metrics.Config in the container
//   - *logger.Logger for lifecycle logs
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) Collector { return m },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle manages the startup and shutdown lifecycle of the
// metrics HTTP server. OnStart launches the server in a background goroutine;
// OnStop shuts it down gracefully. Invoked automatically by FXModule.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})
				if err := m.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("Error starting Prometheus metrics server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Prometheus metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
