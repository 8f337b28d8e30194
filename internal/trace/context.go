package trace

import "context"

// SpanContext: идентификатор активного span-а для вложенных Start/Point.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

// ctxState is everything the package keeps in a context: the tracer and the
// innermost open span. One key keeps lookups to a single Value call.
type ctxState struct {
	tracer Tracer
	span   SpanContext
}

type ctxKey struct{}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext extracts the Tracer from context, Nop if none is attached.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// WithTracer attaches a Tracer to context. The active span is reset: spans of
// a previous tracer mean nothing to the new one.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, ctxState{tracer: t})
}

// CurrentSpan returns the innermost span started through ctx, zero if none.
func CurrentSpan(ctx context.Context) SpanContext {
	return stateOf(ctx).span
}

// WithSpanContext records sc as the active span, keeping the tracer.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	st := stateOf(ctx)
	st.span = sc
	return context.WithValue(ctx, ctxKey{}, st)
}
