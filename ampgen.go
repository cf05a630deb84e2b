// Package ampgen renders a shared component catalog into web and AMP
// documents. The root package re-exports the pieces most callers wire
// together so common setups need a single import.
package ampgen

import (
	"context"

	"github.com/goliatone/go-ampgen/pkg/catalog"
	"github.com/goliatone/go-ampgen/pkg/pipeline"
	"github.com/goliatone/go-ampgen/pkg/render"
	"github.com/goliatone/go-ampgen/pkg/target"
)

// Target selects which output a render produces.
type Target = target.Target

// Web and AMP are the two supported render targets.
const (
	Web = target.Web
	AMP = target.AMP
)

// Request describes a single page render.
type Request = pipeline.Request

// PageMeta carries the per-page document metadata.
type PageMeta = render.PageMeta

// Option configures a Pipeline.
type Option = pipeline.Option

// Pipeline turns catalog components into complete documents.
type Pipeline = pipeline.Pipeline

// New builds a pipeline over a component catalog directory. Additional
// options are applied after the catalog is wired.
func New(catalogDir string, opts ...Option) (*Pipeline, error) {
	store, err := catalog.LoadDir(catalogDir)
	if err != nil {
		return nil, err
	}
	combined := append([]Option{pipeline.WithCatalog(store)}, opts...)
	return pipeline.New(combined...), nil
}

// Render loads a catalog, renders one component, and discards the pipeline.
// Useful for one-off renders; long-lived callers should build a Pipeline
// once and reuse it.
func Render(ctx context.Context, catalogDir string, req Request, opts ...Option) ([]byte, error) {
	p, err := New(catalogDir, opts...)
	if err != nil {
		return nil, err
	}
	return p.Render(ctx, req)
}
