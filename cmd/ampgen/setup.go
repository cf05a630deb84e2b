package main

import (
	"fmt"

	"github.com/goliatone/go-ampgen/pkg/catalog"
	"github.com/goliatone/go-ampgen/pkg/config"
	"github.com/goliatone/go-ampgen/pkg/pipeline"
)

// loadPipeline builds the render pipeline from configuration: catalog from
// disk, built-in renderers, theme defaults passed through.
func loadPipeline(cfg config.Config) (*pipeline.Pipeline, *catalog.Store, error) {
	store, err := catalog.LoadDir(cfg.Catalog.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog from %s: %w", cfg.Catalog.Dir, err)
	}

	opts := []pipeline.Option{pipeline.WithCatalog(store)}
	if cfg.Theme.Name != "" {
		opts = append(opts, pipeline.WithTheme(cfg.Theme.Name, cfg.Theme.Variant))
	}
	return pipeline.New(opts...), store, nil
}

// routeFor maps a component name onto its exported route; "home" and
// "index" publish at the site root.
func routeFor(name string) string {
	if name == "home" || name == "index" {
		return "/"
	}
	return "/" + name
}
