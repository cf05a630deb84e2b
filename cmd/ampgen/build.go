package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/goliatone/go-ampgen/internal/applog"
	"github.com/goliatone/go-ampgen/pkg/config"
	"github.com/goliatone/go-ampgen/pkg/export"
	"github.com/goliatone/go-ampgen/pkg/target"
)

func runBuild(args []string) error {
	fs := flag.NewFlagSet("ampgen build", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	outDir := fs.String("out", "", "output directory (overrides config)")
	extractCSS := fs.Bool("extract-css", false, "write web styles to linked stylesheets")
	gzipFiles := fs.Bool("gzip", false, "write .gz sidecars")

	var targets []target.Target
	fs.Func("target", "build target, repeatable (web, amp)", func(raw string) error {
		t, err := target.Parse(raw)
		if err != nil {
			return err
		}
		targets = append(targets, t)
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *outDir != "" {
		cfg.Build.OutDir = *outDir
	}
	if *extractCSS {
		cfg.Build.ExtractCSS = true
	}
	if *gzipFiles {
		cfg.Build.Gzip = true
	}
	if len(targets) == 0 {
		targets = cfg.BuildTargets()
	}

	logger := applog.Setup(cfg.Log)

	p, store, err := loadPipeline(cfg)
	if err != nil {
		return err
	}

	plan := export.Plan{
		OutDir:     cfg.Build.OutDir,
		Targets:    targets,
		ExtractCSS: cfg.Build.ExtractCSS,
		Gzip:       cfg.Build.Gzip,
	}
	for _, name := range store.Names() {
		comp, err := store.Get(name)
		if err != nil {
			return err
		}
		plan.Pages = append(plan.Pages, export.PagePlan{
			Route:     routeFor(name),
			Component: name,
			Title:     comp.Doc,
		})
	}

	exporter, err := export.New(p, cfg)
	if err != nil {
		return err
	}

	manifest, err := exporter.Export(context.Background(), plan)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROUTE\tTARGET\tFILE\tBYTES\tSTYLESHEET")
	total := 0
	for _, entry := range manifest.Pages {
		stylesheet := entry.Stylesheet
		if stylesheet == "" {
			stylesheet = "(inline)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", entry.Route, entry.Target, entry.File, entry.Bytes, stylesheet)
		total += entry.Bytes
	}
	w.Flush()

	logger.Info().
		Int("pages", len(manifest.Pages)).
		Int("bytes", total).
		Str("out", cfg.Build.OutDir).
		Msg("build complete")
	return nil
}
