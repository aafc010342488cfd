package trace

import "context"

type contextKey struct{}

// WithTracer attaches a tracer to the context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext returns the context's tracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	if t, ok := ctx.Value(contextKey{}).(Tracer); ok {
		return t
	}
	return Nop
}
