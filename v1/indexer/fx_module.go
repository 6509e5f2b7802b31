package indexer

import (
	"go.uber.org/fx"

	"github.com/partnerforge/ragengine/v1/embedding"
	"github.com/partnerforge/ragengine/v1/logger"
	"github.com/partnerforge/ragengine/v1/vectorstore"
)

// FXModule wires the indexer into Fx.
//
// It provides:
//   - Config    (NewConfig)
//   - *Indexer  (New)
//
// Dependencies required by this module:
//   - extraction.Extractor in the container
//   - *segmenter.Segmenter, *embedding.Client, *vectorstore.Client
//   - metrics.Collector and *logger.Logger
var FXModule = fx.Module(
	"indexer",

	fx.Provide(
		NewConfig,
		func(l *logger.Logger) Logger { return l },
		func(c *embedding.Client) Embedder { return c },
		func(c *vectorstore.Client) Store { return c },
		New,
	),
)
