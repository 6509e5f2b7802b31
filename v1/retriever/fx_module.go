package retriever

import (
	"go.uber.org/fx"

	"github.com/partnerforge/ragengine/v1/embedding"
	"github.com/partnerforge/ragengine/v1/logger"
	"github.com/partnerforge/ragengine/v1/vectorstore"
)

// FXModule wires the retriever into Fx.
//
// It provides:
//   - Config      (NewConfig)
//   - *Retriever  (New)
//
// Dependencies required by this module:
//   - *embedding.Client and *vectorstore.Client in the container
//   - metrics.Collector and *logger.Logger
var FXModule = fx.Module(
	"retriever",

	fx.Provide(
		NewConfig,
		func(l *logger.Logger) Logger { return l },
		func(c *embedding.Client) Embedder { return c },
		func(c *vectorstore.Client) Store { return c },
		New,
	),
)
