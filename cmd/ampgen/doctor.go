package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-ampgen/pkg/config"
	"github.com/goliatone/go-ampgen/pkg/head"
	"github.com/goliatone/go-ampgen/pkg/pipeline"
	"github.com/goliatone/go-ampgen/pkg/render"
	"github.com/goliatone/go-ampgen/pkg/styles"
	"github.com/goliatone/go-ampgen/pkg/target"
)

func runDoctor(args []string) error {
	fs := flag.NewFlagSet("ampgen doctor", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	verbose := fs.Bool("verbose", false, "summarize rendered documents")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	p, store, err := loadPipeline(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tTARGET\tMARKUP\tSTYLES\tBYTES\tELEMENTS\tSTATUS")

	failures := 0
	for _, name := range store.Names() {
		comp, err := store.Get(name)
		if err != nil {
			return err
		}

		for _, tgt := range target.All() {
			source := comp.MarkupSource(tgt)
			if source == "" {
				source = "(uses fallback)"
			}

			reg := styles.NewRegistry()
			ctx := styles.NewContext(context.Background(), reg)
			ctx = head.NewContext(ctx, head.New())

			out, err := p.Render(ctx, pipeline.Request{
				Component: name,
				Target:    tgt,
				Page: render.PageMeta{
					Title:        name,
					CanonicalURL: strings.TrimSuffix(cfg.Site.BaseURL, "/") + routeFor(name),
					Lang:         cfg.Site.DefaultLang,
				},
			})

			status := "ok"
			if err != nil {
				status = err.Error()
				failures++
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
				name, tgt, source, reg.Len(), reg.Size(),
				strings.Count(string(out), `custom-element="`), status)

			if *verbose && err == nil {
				summarize(w, out)
			}
		}
	}
	w.Flush()

	if failures > 0 {
		return fmt.Errorf("doctor: %d render(s) failed", failures)
	}
	return nil
}

// summarize prints element counts for a rendered document.
func summarize(w *tabwriter.Writer, doc []byte) {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(string(doc)))
	if err != nil {
		fmt.Fprintf(w, "\t\t(unparseable: %v)\n", err)
		return
	}

	counts := map[string]int{}
	parsed.Find("*").Each(func(_ int, sel *goquery.Selection) {
		counts[goquery.NodeName(sel)]++
	})

	fmt.Fprintf(w, "\t\telements: %d\tstyles: %d\tscripts: %d\tamp: %d\n",
		parsed.Find("*").Length(),
		counts["style"],
		counts["script"],
		countAMPElements(counts))
}

func countAMPElements(counts map[string]int) int {
	total := 0
	for name, n := range counts {
		if strings.HasPrefix(name, "amp-") {
			total += n
		}
	}
	return total
}
