package ampgen_test

import (
	"context"
	"strings"
	"testing"

	ampgen "github.com/goliatone/go-ampgen"
)

func TestRenderFromCatalogDir(t *testing.T) {
	out, err := ampgen.Render(context.Background(), "pkg/pipeline/testdata/site", ampgen.Request{
		Component: "page",
		Target:    ampgen.Web,
		Props:     map[string]any{"title": "Welcome"},
		Page: ampgen.PageMeta{
			Title:        "Welcome",
			CanonicalURL: "https://example.com/",
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "<!doctype html>") {
		t.Error("expected a full document")
	}
	if !strings.Contains(html, "Welcome") {
		t.Error("expected the page title in the output")
	}
}

func TestNewRejectsMissingCatalog(t *testing.T) {
	if _, err := ampgen.New("testdata/does-not-exist"); err == nil {
		t.Fatal("expected an error for a missing catalog directory")
	}
}
