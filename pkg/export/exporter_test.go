package export_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ampgen/pkg/catalog"
	"github.com/goliatone/go-ampgen/pkg/config"
	"github.com/goliatone/go-ampgen/pkg/export"
	"github.com/goliatone/go-ampgen/pkg/pipeline"
	"github.com/goliatone/go-ampgen/pkg/target"
)

func testExporter(t *testing.T) *export.Exporter {
	t.Helper()

	fsys := fstest.MapFS{
		"home/home.html": &fstest.MapFile{Data: []byte(`<h1>{{ props.title }}</h1>`)},
		"home/home.css":  &fstest.MapFile{Data: []byte("h1{color:plum}")},
	}
	store, err := catalog.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	cfg := config.Default()
	cfg.Site.BaseURL = "https://example.com"

	exporter, err := export.New(pipeline.New(pipeline.WithCatalog(store)), cfg)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}
	return exporter
}

func plan(outDir string) export.Plan {
	return export.Plan{
		Pages: []export.PagePlan{
			{Route: "/", Component: "home", Title: "Home", Props: map[string]any{"title": "Hi"}},
			{Route: "/about", Component: "home", Title: "About", Props: map[string]any{"title": "About"}},
		},
		OutDir: outDir,
	}
}

func TestExportBothTargets(t *testing.T) {
	exporter := testExporter(t)
	out := t.TempDir()

	manifest, err := exporter.Export(context.Background(), plan(out))
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	for _, file := range []string{
		"web/index.html",
		"web/about/index.html",
		"amp/index.html",
		"amp/about/index.html",
		"manifest.json",
	} {
		if _, err := os.Stat(filepath.Join(out, file)); err != nil {
			t.Errorf("missing %s: %v", file, err)
		}
	}

	if len(manifest.Pages) != 4 {
		t.Fatalf("manifest pages = %d", len(manifest.Pages))
	}
	// Sorted by route, then target.
	var order []string
	for _, entry := range manifest.Pages {
		order = append(order, entry.Route+":"+entry.Target)
	}
	want := []string{"/:amp", "/:web", "/about:amp", "/about:web"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("manifest order mismatch (-want +got):\n%s", diff)
	}

	ampPage, err := os.ReadFile(filepath.Join(out, "amp", "about", "index.html"))
	if err != nil {
		t.Fatalf("read amp page: %v", err)
	}
	if !strings.Contains(string(ampPage), `rel="canonical" href="https://example.com/about"`) {
		t.Error("amp page missing canonical link")
	}
	if !strings.Contains(string(ampPage), "<style amp-custom>") {
		t.Error("amp page must inline styles")
	}

	webPage, err := os.ReadFile(filepath.Join(out, "web", "about", "index.html"))
	if err != nil {
		t.Fatalf("read web page: %v", err)
	}
	if !strings.Contains(string(webPage), `rel="amphtml" href="https://example.com/amp/about"`) {
		t.Error("web page missing amphtml link")
	}
	if !strings.Contains(string(webPage), "<style data-ampgen>") {
		t.Error("web page should inline styles without ExtractCSS")
	}
}

func TestExportExtractCSS(t *testing.T) {
	exporter := testExporter(t)
	out := t.TempDir()

	p := plan(out)
	p.ExtractCSS = true
	p.Targets = []target.Target{target.Web}

	manifest, err := exporter.Export(context.Background(), p)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	entry := manifest.Pages[1] // "/about" after "/"
	if entry.Stylesheet == "" || entry.StyleHash == "" {
		t.Fatalf("entry missing stylesheet info: %+v", entry)
	}
	if !strings.HasPrefix(entry.Stylesheet, "assets/about-") {
		t.Errorf("stylesheet name = %q", entry.Stylesheet)
	}

	css, err := os.ReadFile(filepath.Join(out, "web", filepath.FromSlash(entry.Stylesheet)))
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(css), "h1{color:plum}") {
		t.Error("extracted css missing fragment")
	}

	page, err := os.ReadFile(filepath.Join(out, "web", "about", "index.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if strings.Contains(string(page), "<style data-ampgen>") {
		t.Error("page should link, not inline, with ExtractCSS")
	}
	if !strings.Contains(string(page), `<link rel="stylesheet" href="/`+entry.Stylesheet+`">`) {
		t.Errorf("page missing stylesheet link:\n%s", page)
	}
}

func TestExportGzipSidecars(t *testing.T) {
	exporter := testExporter(t)
	out := t.TempDir()

	p := plan(out)
	p.Gzip = true
	p.Targets = []target.Target{target.Web}

	if _, err := exporter.Export(context.Background(), p); err != nil {
		t.Fatalf("export: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(out, "web", "about", "index.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	gz, err := os.ReadFile(filepath.Join(out, "web", "about", "index.html.gz"))
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}

	reader, err := gzip.NewReader(bytes.NewReader(gz))
	if err != nil {
		t.Fatalf("open sidecar: %v", err)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("decode sidecar: %v", err)
	}
	if !bytes.Equal(raw, decoded) {
		t.Error("sidecar does not round-trip to the page bytes")
	}
}

func TestExportDeterministic(t *testing.T) {
	exporter := testExporter(t)

	first := t.TempDir()
	second := t.TempDir()
	if _, err := exporter.Export(context.Background(), plan(first)); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if _, err := exporter.Export(context.Background(), plan(second)); err != nil {
		t.Fatalf("second export: %v", err)
	}

	for _, file := range []string{"manifest.json", "web/index.html", "amp/about/index.html"} {
		a, err := os.ReadFile(filepath.Join(first, file))
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		b, err := os.ReadFile(filepath.Join(second, file))
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between identical runs", file)
		}
	}
}

func TestExportManifestShape(t *testing.T) {
	exporter := testExporter(t)
	out := t.TempDir()

	if _, err := exporter.Export(context.Background(), plan(out)); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "manifest.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var decoded export.Manifest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	for _, entry := range decoded.Pages {
		if entry.File == "" || entry.Bytes == 0 {
			t.Errorf("incomplete entry: %+v", entry)
		}
	}
}

func TestExportRejectsBadPlan(t *testing.T) {
	exporter := testExporter(t)

	if _, err := exporter.Export(context.Background(), export.Plan{}); err == nil {
		t.Error("expected out dir error")
	}
	if _, err := exporter.Export(context.Background(), export.Plan{
		OutDir:  t.TempDir(),
		Targets: []target.Target{"pdf"},
	}); err == nil {
		t.Error("expected invalid target error")
	}
}
