package segmenter

import "go.uber.org/fx"

// FXModule wires the segmenter into Fx.
//
// It provides:
//   - Config      (NewConfig)
//   - *Segmenter  (New)
var FXModule = fx.Module(
	"segmenter",

	fx.Provide(
		NewConfig,
		New,
	),
)
