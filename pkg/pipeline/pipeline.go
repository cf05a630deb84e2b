// Package pipeline coordinates a full page render: resolve the component
// and its dependencies from the catalog, validate props, execute and
// transform each component's markup for the target, collect styles and
// head entries, and hand the assembled document to the target's renderer.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-ampgen/pkg/catalog"
	"github.com/goliatone/go-ampgen/pkg/head"
	"github.com/goliatone/go-ampgen/pkg/markup"
	"github.com/goliatone/go-ampgen/pkg/props"
	"github.com/goliatone/go-ampgen/pkg/render"
	"github.com/goliatone/go-ampgen/pkg/renderers/amp"
	"github.com/goliatone/go-ampgen/pkg/renderers/web"
	"github.com/goliatone/go-ampgen/pkg/sanitize"
	"github.com/goliatone/go-ampgen/pkg/styles"
	"github.com/goliatone/go-ampgen/pkg/target"
	"github.com/goliatone/go-ampgen/pkg/template"
	theme "github.com/goliatone/go-theme"
)

// Request describes one page render.
type Request struct {
	// Component names the catalog entry to render.
	Component string
	// Target selects the output flavor; empty falls back to the
	// pipeline's default.
	Target target.Target
	// Props is the value validated against the component's schema and
	// handed to its markup template.
	Props map[string]any
	// Page carries page-level metadata for the document shell.
	Page render.PageMeta
	// Options carries per-render overrides.
	Options render.Options
	// Theme and ThemeVariant override the pipeline defaults for this
	// render.
	Theme        string
	ThemeVariant string
}

// Pipeline coordinates catalog, transform, styles, and document renderers.
// Missing dependencies are initialised with the built-in implementations
// so callers can start with a single constructor call.
type Pipeline struct {
	catalog       *catalog.Store
	registry      *render.Registry
	defaultTarget target.Target
	transformer   *markup.Transformer
	templates     template.Renderer
	sanitize      func(string) string

	themeSelector  theme.ThemeSelector
	themeName      string
	themeVariant   string
	themeFallbacks map[string]string

	initErr error
}

// New constructs a Pipeline applying any provided options.
func New(options ...Option) *Pipeline {
	p := &Pipeline{
		defaultTarget: target.Web,
		sanitize:      sanitize.Fragment,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.applyDefaults()
	return p
}

func (p *Pipeline) applyDefaults() {
	if p.transformer == nil {
		p.transformer = markup.New()
	}
	if p.templates == nil {
		engine, err := template.New()
		if err != nil {
			p.initErr = fmt.Errorf("pipeline: configure template engine: %w", err)
			return
		}
		p.templates = engine
	}
	if p.registry == nil {
		p.registry = render.NewRegistry()
	}
	if !p.registry.Has(web.Name) {
		renderer, err := web.New()
		if err != nil {
			p.initErr = fmt.Errorf("pipeline: configure web renderer: %w", err)
			return
		}
		p.registry.MustRegister(renderer)
	}
	if !p.registry.Has(amp.Name) {
		renderer, err := amp.New()
		if err != nil {
			p.initErr = fmt.Errorf("pipeline: configure amp renderer: %w", err)
			return
		}
		p.registry.MustRegister(renderer)
	}
}

// Catalog returns the component store the pipeline renders from.
func (p *Pipeline) Catalog() *catalog.Store {
	return p.catalog
}

// Renderers returns the renderer registry.
func (p *Pipeline) Renderers() *render.Registry {
	return p.registry
}

// Render runs the full sequence for one page and returns the serialized
// document.
func (p *Pipeline) Render(ctx context.Context, req Request) ([]byte, error) {
	if p.initErr != nil {
		return nil, p.initErr
	}
	if p.catalog == nil {
		return nil, fmt.Errorf("pipeline: no catalog configured")
	}

	tgt := req.Target
	if tgt == "" {
		tgt = p.defaultTarget
	}
	if !tgt.Valid() {
		return nil, fmt.Errorf("pipeline: invalid target %q", tgt)
	}

	comps, err := p.catalog.Flatten(req.Component)
	if err != nil {
		return nil, fmt.Errorf("pipeline: resolve %q: %w", req.Component, err)
	}
	root := comps[len(comps)-1]

	if err := root.Schema.Validate(req.Props); err != nil {
		return nil, fmt.Errorf("pipeline: component %q: %w", root.Name, err)
	}

	// Server mode installs registry and head per request; CLI renders get
	// per-render instances.
	reg, ok := styles.FromContext(ctx)
	if !ok {
		reg = styles.NewRegistry()
	}
	if len(req.Options.HydrationIDs) > 0 {
		reg.Hydrate(req.Options.HydrationIDs...)
	}
	hd, ok := head.FromContext(ctx)
	if !ok {
		hd = head.New()
	}

	themeCfg, err := p.resolveTheme(req)
	if err != nil {
		return nil, err
	}
	// Token CSS registers first so component fragments can reference the
	// custom properties.
	registerThemeCSS(reg, themeCfg)

	cleaned := p.cleanProps(root, req.Props)

	var (
		body     []byte
		elements []string
		rendered = make(map[string]string, len(comps))
	)
	for _, comp := range comps {
		for _, frag := range comp.Styles {
			reg.AddNamed(frag.ID, frag.CSS)
		}

		src, err := comp.MarkupFor(tgt)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}

		data := map[string]any{
			"props":      map[string]any{},
			"target":     tgt.String(),
			"components": rendered,
		}
		if comp.Name == root.Name {
			data["props"] = cleaned
		}
		if themeCfg != nil {
			data["theme"] = map[string]any{
				"name":    themeCfg.Theme,
				"variant": themeCfg.Variant,
				"tokens":  themeCfg.Tokens,
			}
		}

		executed, err := p.templates.RenderString(src, data)
		if err != nil {
			return nil, fmt.Errorf("pipeline: render component %q: %w", comp.Name, err)
		}

		result, err := p.transformer.Transform([]byte(executed), tgt)
		if err != nil {
			return nil, fmt.Errorf("pipeline: transform component %q: %w", comp.Name, err)
		}
		for _, css := range result.Styles {
			reg.Add(css)
		}
		elements = mergeElements(elements, result.Elements)
		rendered[comp.Name] = string(result.HTML)

		if comp.Name == root.Name {
			body = result.HTML
		}
	}

	// Per-component results arrive sorted, but the cross-component merge
	// appends in dependency order.
	sort.Strings(elements)

	renderer, err := p.registry.Get(tgt.String())
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	return renderer.Render(ctx, render.Document{
		Body:     body,
		Head:     hd,
		Styles:   reg,
		Elements: elements,
		Page:     req.Page,
		Theme:    themeCfg,
		Options:  req.Options,
	})
}

// cleanProps passes HTML-typed prop values through the sanitizer. A prop
// is HTML-typed when its schema property declares format: html.
func (p *Pipeline) cleanProps(root catalog.Component, in map[string]any) map[string]any {
	if len(in) == 0 {
		return map[string]any{}
	}

	htmlKeys := htmlProps(root.Schema)
	out := make(map[string]any, len(in))
	for k, v := range in {
		if _, isHTML := htmlKeys[k]; isHTML {
			if s, ok := v.(string); ok {
				out[k] = p.sanitize(s)
				continue
			}
		}
		out[k] = v
	}
	return out
}

func htmlProps(schema *props.Schema) map[string]struct{} {
	raw := schema.Raw()
	if raw == nil {
		return nil
	}
	properties, _ := raw["properties"].(map[string]any)
	out := make(map[string]struct{})
	for name, def := range properties {
		m, ok := def.(map[string]any)
		if !ok {
			continue
		}
		if format, _ := m["format"].(string); strings.EqualFold(format, "html") {
			out[name] = struct{}{}
		}
	}
	return out
}

func mergeElements(acc, add []string) []string {
	for _, el := range add {
		found := false
		for _, have := range acc {
			if have == el {
				found = true
				break
			}
		}
		if !found {
			acc = append(acc, el)
		}
	}
	return acc
}
