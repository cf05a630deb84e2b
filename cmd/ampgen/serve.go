package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/goliatone/go-ampgen/internal/applog"
	"github.com/goliatone/go-ampgen/internal/buildinfo"
	"github.com/goliatone/go-ampgen/pkg/config"
	"github.com/goliatone/go-ampgen/pkg/server"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("ampgen serve", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	addr := fs.String("addr", "", "listen address (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Serve.Addr = *addr
	}

	logger := applog.Setup(cfg.Log)

	p, store, err := loadPipeline(cfg)
	if err != nil {
		return err
	}

	// The dev server publishes every catalog component; query parameters
	// become string props so authors can poke at a component without a
	// loader.
	var pages []server.Page
	for _, name := range store.Names() {
		comp, err := store.Get(name)
		if err != nil {
			return err
		}
		pages = append(pages, server.Page{
			Route:       routeFor(name),
			Component:   name,
			Title:       comp.Doc,
			PropsLoader: queryProps,
		})
	}

	options := []server.Option{server.WithLogger(logger)}
	if info, err := os.Stat(cfg.Catalog.Dir); err == nil && info.IsDir() {
		options = append(options, server.WithAssets(os.DirFS(cfg.Catalog.Dir)))
	}

	srv, err := server.New(p, cfg, pages, options...)
	if err != nil {
		return err
	}

	logger.Info().
		Str("addr", cfg.Serve.Addr).
		Int("pages", len(pages)).
		Str("version", buildinfo.Read().String()).
		Msg("serving catalog")
	return http.ListenAndServe(cfg.Serve.Addr, srv.Handler())
}

func queryProps(r *http.Request) (map[string]any, error) {
	props := map[string]any{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			props[key] = values[0]
		}
	}
	return props, nil
}
