package head

import "context"

// headKeyType defines a unique type for the head context key.
type headKeyType struct{}

var headKey = headKeyType{}

// NewContext attaches a head collector to the context.
func NewContext(ctx context.Context, h *Head) context.Context {
	return context.WithValue(ctx, headKey, h)
}

// FromContext retrieves the head collector installed by NewContext.
func FromContext(ctx context.Context) (*Head, bool) {
	h, ok := ctx.Value(headKey).(*Head)
	return h, ok
}
