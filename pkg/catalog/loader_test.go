package catalog_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ampgen/pkg/catalog"
	"github.com/goliatone/go-ampgen/pkg/target"
)

func loadStore(t *testing.T, name string) *catalog.Store {
	t.Helper()

	store, err := catalog.LoadDir(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("load catalog %s: %v", name, err)
	}
	return store
}

func TestLoadFS_Basic(t *testing.T) {
	store := loadStore(t, "basic")

	if diff := cmp.Diff([]string{"card", "hero", "icon"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	card, err := store.Get("card")
	if err != nil {
		t.Fatalf("get card: %v", err)
	}
	if card.Doc == "" {
		t.Fatalf("card doc not loaded")
	}
	if diff := cmp.Diff([]string{"icon"}, card.Uses); diff != "" {
		t.Fatalf("card uses mismatch (-want +got):\n%s", diff)
	}
	if len(card.Styles) != 1 || card.Styles[0].ID != "card/card.css" {
		t.Fatalf("card styles: %#v", card.Styles)
	}
	if card.Schema == nil {
		t.Fatalf("card schema not compiled")
	}
	if err := card.Schema.Validate(map[string]any{"plan": "pro"}); err == nil {
		t.Fatalf("schema accepted props missing required title")
	}

	markup, err := card.MarkupFor(target.Web)
	if err != nil {
		t.Fatalf("card web markup: %v", err)
	}
	if !strings.Contains(markup, "web-onclick") {
		t.Fatalf("shared markup not returned: %q", markup)
	}
	if got := card.MarkupSource(target.AMP); got != "card/card.html" {
		t.Fatalf("card amp markup source: %q", got)
	}
}

func TestTargetSplitResolution(t *testing.T) {
	store := loadStore(t, "basic")

	hero, err := store.Get("hero")
	if err != nil {
		t.Fatalf("get hero: %v", err)
	}

	if got := hero.MarkupSource(target.AMP); got != "hero/hero.amp.html" {
		t.Fatalf("amp variant not resolved: %q", got)
	}
	if got := hero.MarkupSource(target.Web); got != "hero/hero.html" {
		t.Fatalf("web fallback not resolved: %q", got)
	}

	ampMarkup, err := hero.MarkupFor(target.AMP)
	if err != nil {
		t.Fatalf("hero amp markup: %v", err)
	}
	if !strings.Contains(ampMarkup, "amp-carousel") {
		t.Fatalf("amp variant content not loaded: %q", ampMarkup)
	}
}

func TestStyleOrdering(t *testing.T) {
	store := loadStore(t, "basic")

	hero, err := store.Get("hero")
	if err != nil {
		t.Fatalf("get hero: %v", err)
	}

	var ids []string
	for _, frag := range hero.Styles {
		ids = append(ids, frag.ID)
	}
	// Manifest-listed files first, remaining css in lexical order.
	if diff := cmp.Diff([]string{"hero/hero.css", "hero/extra.css"}, ids); diff != "" {
		t.Fatalf("style order mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten(t *testing.T) {
	store := loadStore(t, "basic")

	chain, err := store.Flatten("card")
	if err != nil {
		t.Fatalf("flatten card: %v", err)
	}
	var names []string
	for _, comp := range chain {
		names = append(names, comp.Name)
	}
	if diff := cmp.Diff([]string{"icon", "card"}, names); diff != "" {
		t.Fatalf("flatten order mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenDetectsCycle(t *testing.T) {
	store := loadStore(t, "cycle")

	if _, err := store.Flatten("a"); err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestDanglingUse(t *testing.T) {
	fsys := fstest.MapFS{
		"solo/solo.html":      {Data: []byte("<div>x</div>")},
		"solo/component.yaml": {Data: []byte("uses: [ghost]\n")},
	}
	if _, err := catalog.LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "unknown component") {
		t.Fatalf("expected dangling use error, got %v", err)
	}
}

func TestInvalidComponentName(t *testing.T) {
	fsys := fstest.MapFS{
		"Bad_Name/Bad_Name.html": {Data: []byte("<div>x</div>")},
	}
	if _, err := catalog.LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "invalid component name") {
		t.Fatalf("expected name error, got %v", err)
	}
}

func TestMissingMarkup(t *testing.T) {
	fsys := fstest.MapFS{
		"bare/bare.css": {Data: []byte(".x{}")},
	}
	if _, err := catalog.LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "no markup") {
		t.Fatalf("expected missing markup error, got %v", err)
	}
}

func TestManifestStyleErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"c/c.html":         {Data: []byte("<div>x</div>")},
		"c/component.yaml": {Data: []byte("styles: [missing.css]\n")},
	}
	if _, err := catalog.LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "missing style") {
		t.Fatalf("expected missing style error, got %v", err)
	}
}

func TestEmptyAndNotFound(t *testing.T) {
	store, err := catalog.LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil fs: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("nil fs produced %d components", store.Len())
	}
	if _, err := store.Get("anything"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
