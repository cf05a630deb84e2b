// Package web renders the standard HTML5 document shell. Styles inline by
// default with a hydration id-set alongside; configuring a stylesheet href
// switches the document to a link, the export path's extracted-CSS mode.
package web

import (
	"context"
	"fmt"
	"html"
	"io/fs"
	"os"

	"github.com/goliatone/go-ampgen/pkg/head"
	"github.com/goliatone/go-ampgen/pkg/render"
	"github.com/goliatone/go-ampgen/pkg/target"
	"github.com/goliatone/go-ampgen/pkg/template"
)

// Name is the renderer's registry name; it matches the target it serves.
const Name = "web"

const shellTemplate = "shell.web"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	engine     template.Renderer
}

// WithTemplatesFS supplies an alternate shell template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads shell templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithEngine injects a custom template engine.
func WithEngine(engine template.Renderer) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// Renderer emits complete HTML5 documents.
type Renderer struct {
	engine template.Renderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the web renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine := cfg.engine
	if engine == nil {
		built, err := template.New(template.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("web renderer: configure template engine: %w", err)
		}
		engine = built
	}

	return &Renderer{engine: engine}, nil
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render assembles the document shell around the transformed body.
func (r *Renderer) Render(ctx context.Context, doc render.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("web renderer: %w", err)
	}

	h := doc.Head
	if h == nil {
		h = head.New()
	}
	if doc.Page.Title != "" && h.Title() == "" {
		h.SetTitle(doc.Page.Title)
	}
	if doc.Page.CanonicalURL != "" {
		h.AddLink(head.Link{Rel: "canonical", Href: doc.Page.CanonicalURL})
	}
	if doc.Page.AMPURL != "" {
		h.AddLink(head.Link{Rel: "amphtml", Href: doc.Page.AMPURL})
	}

	stylesTag, hydrationTag, err := r.styleTags(doc)
	if err != nil {
		return nil, err
	}

	lang := doc.Page.Lang
	if lang == "" {
		lang = "en"
	}

	data := map[string]any{
		"lang":          lang,
		"head_html":     h.HTML(target.Web),
		"styles_tag":    stylesTag,
		"hydration_tag": hydrationTag,
		"body":          string(doc.Body),
	}
	if doc.Theme != nil {
		data["theme"] = map[string]any{
			"name":    doc.Theme.Theme,
			"variant": doc.Theme.Variant,
			"tokens":  doc.Theme.Tokens,
		}
	}

	out, err := r.renderShell(doc, data)
	if err != nil {
		return nil, fmt.Errorf("web renderer: render shell: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) renderShell(doc render.Document, data map[string]any) (string, error) {
	if doc.Theme != nil {
		if partial := doc.Theme.Partials[shellTemplate]; partial != "" {
			return r.engine.RenderString(partial, data)
		}
	}
	return r.engine.RenderTemplate(shellTemplate, data)
}

func (r *Renderer) styleTags(doc render.Document) (styles, hydration string, err error) {
	if doc.Styles == nil {
		return "", "", nil
	}

	if doc.Options.StylesheetHref != "" && !doc.Options.InlineStyles {
		link := `<link rel="stylesheet" href="` + html.EscapeString(doc.Options.StylesheetHref) + `">`
		return link, "", nil
	}

	tag, err := doc.Styles.StyleTag(target.Web)
	if err != nil {
		return "", "", fmt.Errorf("web renderer: %w", err)
	}
	return tag, doc.Styles.HydrationTag(), nil
}
