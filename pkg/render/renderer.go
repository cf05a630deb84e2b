// Package render defines the seam between the pipeline and the document
// renderers. A Renderer turns an assembled Document into a complete HTML
// response for one target; the Registry lets callers discover and swap
// renderers by name.
package render

import (
	"context"

	"github.com/goliatone/go-ampgen/pkg/head"
	"github.com/goliatone/go-ampgen/pkg/styles"
)

// Renderer converts an assembled Document into a serialized response body.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// Document carries everything a renderer needs to produce a page: the
// transformed body markup, the collected head entries, the style registry,
// and the AMP elements the body references.
type Document struct {
	// Body is the transformed component markup, ready for embedding.
	Body []byte
	// Head holds the collected head entries; nil means an empty head.
	Head *head.Head
	// Styles is the request's style registry; nil means no styles.
	Styles *styles.Registry
	// Elements lists the AMP custom elements the body uses, sorted. The
	// AMP renderer imports a script per entry; the web renderer ignores
	// them.
	Elements []string
	// Page carries page-level metadata.
	Page PageMeta
	// Theme is the resolved theme configuration, nil when theming is off.
	Theme *ThemeConfig
	// Options carries per-render overrides.
	Options Options
}

// PageMeta is the page-level metadata a document shell needs.
type PageMeta struct {
	// Title becomes the document title unless a component already set one.
	Title string
	// CanonicalURL is the canonical web URL. Mandatory for AMP output.
	CanonicalURL string
	// AMPURL, when set, links the AMP variant from the web document.
	AMPURL string
	// Lang is the html element's lang attribute; empty defaults to "en".
	Lang string
}

// Options are per-render overrides a caller can pass without touching the
// pipeline configuration.
type Options struct {
	// InlineStyles forces the style tag inline even when a stylesheet
	// href is configured.
	InlineStyles bool
	// StylesheetHref, when set, makes the web renderer link the aggregate
	// stylesheet instead of inlining it. AMP output always inlines.
	StylesheetHref string
	// HydrationIDs seeds the style registry with ids already present in
	// the client document.
	HydrationIDs []string
}

// ThemeConfig is the renderer-facing product of a theme selection: merged
// partials, tokens, derived custom properties, and an asset resolver.
type ThemeConfig struct {
	Theme    string
	Variant  string
	Partials map[string]string
	Tokens   map[string]string
	CSSVars  map[string]string
	AssetURL func(key string) string
}
