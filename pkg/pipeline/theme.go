package pipeline

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ampgen/pkg/render"
	"github.com/goliatone/go-ampgen/pkg/styles"
)

// resolveTheme turns the request's theme choice into a renderer-facing
// configuration. No selector means theming is off and the render proceeds
// without one.
func (p *Pipeline) resolveTheme(req Request) (*render.ThemeConfig, error) {
	if p.themeSelector == nil {
		return nil, nil
	}

	name := req.Theme
	if name == "" {
		name = p.themeName
	}
	variant := req.ThemeVariant
	if variant == "" {
		variant = p.themeVariant
	}

	selection, err := p.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("pipeline: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, nil
	}

	return p.themeConfig(selection), nil
}

// themeConfig merges manifest and variant into the renderer-facing view:
// variant entries override base entries, fallbacks fill remaining partial
// slots, tokens derive --token custom properties, and asset keys resolve
// through the manifest prefix.
func (p *Pipeline) themeConfig(selection *theme.Selection) *render.ThemeConfig {
	manifest := selection.Manifest

	partials := make(map[string]string, len(p.themeFallbacks)+len(manifest.Templates))
	for slot, tmpl := range p.themeFallbacks {
		partials[slot] = tmpl
	}
	for slot, tmpl := range manifest.Templates {
		partials[slot] = tmpl
	}

	tokens := make(map[string]string, len(manifest.Tokens))
	for k, v := range manifest.Tokens {
		tokens[k] = v
	}

	assets := make(map[string]string, len(manifest.Assets.Files))
	for k, v := range manifest.Assets.Files {
		assets[k] = v
	}

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for slot, tmpl := range variant.Templates {
			partials[slot] = tmpl
		}
		for k, v := range variant.Tokens {
			tokens[k] = v
		}
		for k, v := range variant.Assets.Files {
			assets[k] = v
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for k, v := range tokens {
		cssVars["--"+strings.ReplaceAll(k, ".", "-")] = v
	}

	prefix := strings.TrimSuffix(manifest.Assets.Prefix, "/")
	assetURL := func(key string) string {
		file, ok := assets[key]
		if !ok {
			return ""
		}
		return prefix + "/" + file
	}

	return &render.ThemeConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetURL,
	}
}

// registerThemeCSS registers the theme's custom-property block ahead of
// component fragments so they can reference the variables.
func registerThemeCSS(reg *styles.Registry, cfg *render.ThemeConfig) {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return
	}

	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root{")
	for _, name := range names {
		b.WriteString(name + ":" + cfg.CSSVars[name] + ";")
	}
	b.WriteString("}")

	variant := cfg.Variant
	if variant == "" {
		variant = "default"
	}
	reg.AddNamed("theme/"+cfg.Theme+"/"+variant, b.String())
}
