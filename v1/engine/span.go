package engine

import (
	"context"

	traceSpan "go.opentelemetry.io/otel/trace"
)

// span is a thin wrapper so engine operations can trace unconditionally;
// with tracing disabled every method is a no-op.
type span struct {
	inner traceSpan.Span
	owner *Engine
}

func (e *Engine) startSpan(ctx context.Context, name string) (context.Context, span) {
	if e.tracing == nil {
		return ctx, span{}
	}
	ctx, s := e.tracing.StartSpan(ctx, name)
	return ctx, span{inner: s, owner: e}
}

func (s span) end() {
	if s.inner != nil {
		s.inner.End()
	}
}

func (s span) recordError(err error) {
	if s.inner != nil && err != nil {
		s.owner.tracing.RecordErrorOnSpan(s.inner, err)
	}
}
