package styles

import "context"

// registryKeyType defines a unique type for the registry context key.
type registryKeyType struct{}

var registryKey = registryKeyType{}

// NewContext attaches a registry to the context. Server middleware calls
// this once per request; CLI renders call it once per page.
func NewContext(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey, r)
}

// FromContext retrieves the registry installed by NewContext.
func FromContext(ctx context.Context) (*Registry, bool) {
	r, ok := ctx.Value(registryKey).(*Registry)
	return r, ok
}
