package pipeline

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ampgen/pkg/catalog"
	"github.com/goliatone/go-ampgen/pkg/markup"
	"github.com/goliatone/go-ampgen/pkg/render"
	"github.com/goliatone/go-ampgen/pkg/target"
	"github.com/goliatone/go-ampgen/pkg/template"
)

// Option customises the pipeline configuration.
type Option func(*Pipeline)

// WithCatalog supplies the component store renders resolve against.
func WithCatalog(store *catalog.Store) Option {
	return func(p *Pipeline) {
		p.catalog = store
	}
}

// WithRenderers injects a renderer registry. Without it the pipeline
// registers the built-in web and amp document renderers.
func WithRenderers(registry *render.Registry) Option {
	return func(p *Pipeline) {
		p.registry = registry
	}
}

// WithDefaultTarget overrides the target used when a request omits one.
func WithDefaultTarget(t target.Target) Option {
	return func(p *Pipeline) {
		p.defaultTarget = t
	}
}

// WithTransformer injects a configured markup transformer.
func WithTransformer(t *markup.Transformer) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.transformer = t
		}
	}
}

// WithTemplates injects the engine component markup executes through.
func WithTemplates(engine template.Renderer) Option {
	return func(p *Pipeline) {
		if engine != nil {
			p.templates = engine
		}
	}
}

// WithSanitizer overrides the cleaner applied to HTML-typed prop values
// before template execution.
func WithSanitizer(fn func(string) string) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.sanitize = fn
		}
	}
}

// WithThemeSelector passes a go-theme selector through so theme/variant
// choices resolve ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(p *Pipeline) {
		p.themeSelector = selector
	}
}

// WithThemeProvider registers a go-theme provider together with the
// default theme and variant renders fall back to.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(p *Pipeline) {
		if selector, ok := provider.(theme.ThemeSelector); ok {
			p.themeSelector = selector
		}
		p.themeName = defaultTheme
		p.themeVariant = defaultVariant
	}
}

// WithTheme sets the default theme and variant resolved per render when
// the request does not name its own.
func WithTheme(name, variant string) Option {
	return func(p *Pipeline) {
		p.themeName = name
		p.themeVariant = variant
	}
}

// WithThemeFallbacks supplies partials used when a theme selection leaves
// a slot empty.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(p *Pipeline) {
		if len(fallbacks) == 0 {
			return
		}
		if p.themeFallbacks == nil {
			p.themeFallbacks = make(map[string]string, len(fallbacks))
		}
		for k, v := range fallbacks {
			p.themeFallbacks[k] = v
		}
	}
}
