// Package export writes the rendered site to disk: one directory per
// target, a page per route, optionally with the aggregate CSS extracted to
// content-hash-named stylesheets and gzip sidecars alongside. The output
// is deterministic; identical inputs produce byte-identical trees.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-ampgen/pkg/config"
	"github.com/goliatone/go-ampgen/pkg/head"
	"github.com/goliatone/go-ampgen/pkg/pipeline"
	"github.com/goliatone/go-ampgen/pkg/render"
	"github.com/goliatone/go-ampgen/pkg/styles"
	"github.com/goliatone/go-ampgen/pkg/target"
)

// PagePlan is one route to export.
type PagePlan struct {
	Route     string
	Component string
	Title     string
	Props     map[string]any
}

// Plan describes a full export run.
type Plan struct {
	Pages []PagePlan
	// Targets lists the output flavors; empty means all.
	Targets []target.Target
	OutDir  string
	// ExtractCSS writes web pages' aggregate CSS to linked stylesheets
	// instead of inlining. AMP pages always inline; amp-custom is
	// mandatory.
	ExtractCSS bool
	// Gzip writes .gz sidecars for every .html and .css file.
	Gzip bool
}

// Entry records one exported page in the manifest.
type Entry struct {
	Route      string `json:"route"`
	Target     string `json:"target"`
	File       string `json:"file"`
	Stylesheet string `json:"stylesheet,omitempty"`
	StyleHash  string `json:"styleHash,omitempty"`
	Bytes      int    `json:"bytes"`
}

// Manifest summarizes an export run. The pages slice is sorted by route,
// then target.
type Manifest struct {
	Pages []Entry `json:"pages"`
}

// Exporter renders a plan's pages through a pipeline and writes the tree.
type Exporter struct {
	pipeline *pipeline.Pipeline
	cfg      config.Config
}

// New builds an exporter over a pipeline. Site configuration supplies the
// canonical base URL and AMP prefix the exported pages cross-link with.
func New(p *pipeline.Pipeline, cfg config.Config) (*Exporter, error) {
	if p == nil {
		return nil, errors.New("export: pipeline is required")
	}
	return &Exporter{pipeline: p, cfg: cfg}, nil
}

// Export renders every page for every target and writes the output tree
// plus manifest.json. Pages render concurrently, bounded by GOMAXPROCS.
func (e *Exporter) Export(ctx context.Context, plan Plan) (Manifest, error) {
	if plan.OutDir == "" {
		return Manifest{}, errors.New("export: out dir is required")
	}
	targets := plan.Targets
	if len(targets) == 0 {
		targets = target.All()
	}
	for _, tgt := range targets {
		if !tgt.Valid() {
			return Manifest{}, fmt.Errorf("export: invalid target %q", tgt)
		}
	}

	var (
		mu      sync.Mutex
		entries []Entry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, page := range plan.Pages {
		for _, tgt := range targets {
			g.Go(func() error {
				entry, err := e.exportPage(gctx, plan, page, tgt)
				if err != nil {
					return err
				}
				mu.Lock()
				entries = append(entries, entry)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Manifest{}, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Route != entries[j].Route {
			return entries[i].Route < entries[j].Route
		}
		return entries[i].Target < entries[j].Target
	})

	manifest := Manifest{Pages: entries}
	if err := e.writeManifest(plan.OutDir, manifest); err != nil {
		return Manifest{}, err
	}
	return manifest, nil
}

func (e *Exporter) exportPage(ctx context.Context, plan Plan, page PagePlan, tgt target.Target) (Entry, error) {
	req := e.request(page, tgt)

	// Render with a private registry so the aggregate CSS is readable
	// afterwards for extraction and accounting.
	reg := styles.NewRegistry()
	rctx := styles.NewContext(ctx, reg)
	rctx = head.NewContext(rctx, head.New())

	var (
		stylesheetRel string
		styleHash     string
	)
	if plan.ExtractCSS && tgt == target.Web {
		// First pass collects the CSS the page needs; the second pass
		// links the extracted file instead of inlining.
		if _, err := e.pipeline.Render(rctx, req); err != nil {
			return Entry{}, fmt.Errorf("export: render %s (%s): %w", page.Route, tgt, err)
		}
		if css := reg.CSS(); css != "" {
			styleHash = styles.HashID(css)
			name := routeSlug(page.Route) + "-" + styleHash + ".css"
			stylesheetRel = "assets/" + name

			path := filepath.Join(plan.OutDir, tgt.String(), "assets", name)
			if err := writeFile(path, []byte(css), plan.Gzip); err != nil {
				return Entry{}, err
			}
			req.Options.StylesheetHref = "/assets/" + name
		}

		reg = styles.NewRegistry()
		rctx = styles.NewContext(ctx, reg)
		rctx = head.NewContext(rctx, head.New())
	}

	body, err := e.pipeline.Render(rctx, req)
	if err != nil {
		return Entry{}, fmt.Errorf("export: render %s (%s): %w", page.Route, tgt, err)
	}

	rel := routePath(page.Route)
	path := filepath.Join(plan.OutDir, tgt.String(), filepath.FromSlash(rel))
	if err := writeFile(path, body, plan.Gzip); err != nil {
		return Entry{}, err
	}

	return Entry{
		Route:      page.Route,
		Target:     tgt.String(),
		File:       tgt.String() + "/" + rel,
		Stylesheet: stylesheetRel,
		StyleHash:  styleHash,
		Bytes:      len(body),
	}, nil
}

func (e *Exporter) request(page PagePlan, tgt target.Target) pipeline.Request {
	base := strings.TrimSuffix(e.cfg.Site.BaseURL, "/")
	req := pipeline.Request{
		Component: page.Component,
		Target:    tgt,
		Props:     page.Props,
		Page: render.PageMeta{
			Title:        page.Title,
			CanonicalURL: base + page.Route,
			Lang:         e.cfg.Site.DefaultLang,
		},
	}
	if tgt == target.Web {
		req.Page.AMPURL = base + e.cfg.Site.AMPPrefix + page.Route
	}
	return req
}

// routePath maps a route onto its file: "/" -> index.html, "/pricing" ->
// pricing/index.html.
func routePath(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return "index.html"
	}
	return trimmed + "/index.html"
}

// routeSlug names a route's extracted stylesheet.
func routeSlug(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return "index"
	}
	return strings.ReplaceAll(trimmed, "/", "-")
}

func writeFile(path string, data []byte, sidecar bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if !sidecar {
		return nil
	}

	gz, err := gzipBytes(data)
	if err != nil {
		return fmt.Errorf("export: gzip %s: %w", path, err)
	}
	if err := os.WriteFile(path+".gz", gz, 0o644); err != nil {
		return fmt.Errorf("export: write %s.gz: %w", path, err)
	}
	return nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var b bytes.Buffer
	w, err := gzip.NewWriterLevel(&b, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (e *Exporter) writeManifest(outDir string, manifest Manifest) error {
	payload, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("export: encode manifest: %w", err)
	}
	payload = append(payload, '\n')

	path := filepath.Join(outDir, "manifest.json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", outDir, err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
