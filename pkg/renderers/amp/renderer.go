// Package amp renders the AMP HTML document shell: the ⚡ document, runtime
// and custom-element script imports, the mandatory boilerplate pair, and
// the single amp-custom style block fed from the request's style registry.
// It emits correct scaffolding and enforces the style byte budget; running
// documents through the AMP validator is the embedder's concern.
package amp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-ampgen/pkg/head"
	"github.com/goliatone/go-ampgen/pkg/render"
	"github.com/goliatone/go-ampgen/pkg/target"
	"github.com/goliatone/go-ampgen/pkg/template"
)

// Name is the renderer's registry name.
const Name = "amp"

const shellTemplate = "shell.amp"

// ErrNoCanonical reports an AMP render without a canonical URL. Every AMP
// document must link its canonical variant.
var ErrNoCanonical = errors.New("canonical url is required")

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

// Renderer emits complete AMP documents.
type Renderer struct {
	engine template.Renderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the AMP renderer applying any provided options.
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
			return nil, fmt.Errorf("amp renderer: configure template engine: %w", err)
		}
		engine = built
	}

	return &Renderer{engine: engine}, nil
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render assembles the AMP document shell around the transformed body.
func (r *Renderer) Render(ctx context.Context, doc render.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("amp renderer: %w", err)
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
	if !h.HasRel("canonical") {
		return nil, fmt.Errorf("amp renderer: %w", ErrNoCanonical)
	}

	var stylesTag string
	if doc.Styles != nil {
		tag, err := doc.Styles.StyleTag(target.AMP)
		if err != nil {
			return nil, fmt.Errorf("amp renderer: %w", err)
		}
		stylesTag = tag
	}

	lang := doc.Page.Lang
	if lang == "" {
		lang = "en"
	}

	data := map[string]any{
		"lang":            lang,
		"runtime_src":     RuntimeSrc,
		"element_scripts": ElementScripts(doc.Elements),
		"head_html":       h.HTML(target.AMP),
		"boilerplate":     Boilerplate,
		"styles_tag":      stylesTag,
		"body":            string(doc.Body),
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
		return nil, fmt.Errorf("amp renderer: render shell: %w", err)
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
