package engine

import (
	"context"

	"go.uber.org/fx"

	"github.com/partnerforge/ragengine/v1/embedding"
	"github.com/partnerforge/ragengine/v1/indexer"
	"github.com/partnerforge/ragengine/v1/logger"
	"github.com/partnerforge/ragengine/v1/metrics"
	"github.com/partnerforge/ragengine/v1/retriever"
	"github.com/partnerforge/ragengine/v1/segmenter"
	"github.com/partnerforge/ragengine/v1/tracer"
	"github.com/partnerforge/ragengine/v1/vectorstore"
)

// FXModule composes the whole engine: logger, metrics, tracer, embedding,
// vector store, segmenter, indexer and retriever, topped by the Engine
// façade with lifecycle hooks.
//
// The vector store module registers its own lifecycle (collection
// bootstrap on start); the engine hook then moves the façade to Ready and
// closes it on shutdown.
//
// Dependencies still required in the container: logger.Config,
// metrics.Config, tracer.Config and extraction.Extractor.
var FXModule = fx.Module(
	"engine",

	logger.FXModule,
	metrics.FXModule,
	tracer.FXModule,
	embedding.FXModule,
	vectorstore.FXModule,
	segmenter.FXModule,
	indexer.FXModule,
	retriever.FXModule,

	fx.Provide(
		func(l *logger.Logger) Logger { return l },
		func(c *embedding.Client) Embedder { return c },
		func(c *vectorstore.Client) Store { return c },
		New,
	),

	fx.Invoke(RegisterEngineLifecycle),
)

// RegisterEngineLifecycle readies the engine on start and closes it on
// stop. Invoked automatically by FXModule.
func RegisterEngineLifecycle(lc fx.Lifecycle, e *Engine, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !e.Initialize(ctx) {
				log.Warn("engine started degraded", nil, nil)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Close()
		},
	})
}
