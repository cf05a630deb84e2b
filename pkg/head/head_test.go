package head_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-ampgen/pkg/head"
	"github.com/goliatone/go-ampgen/pkg/target"
)

func TestTitleLastWriterWins(t *testing.T) {
	h := head.New()
	h.SetTitle("Component Title")
	h.SetTitle("Page Title")

	if got := h.Title(); got != "Page Title" {
		t.Fatalf("title: got %q", got)
	}
	if out := h.HTML(target.Web); !strings.Contains(out, "<title>Page Title</title>") {
		t.Fatalf("serialized title missing: %q", out)
	}
}

func TestMetaDeduplication(t *testing.T) {
	h := head.New()
	h.AddMeta(head.Meta{Name: "description", Content: "first"})
	h.AddMeta(head.Meta{Name: "description", Content: "second"})
	h.AddMeta(head.Meta{Property: "og:title", Content: "shared"})
	h.AddMeta(head.Meta{Content: "keyless"})

	out := h.HTML(target.Web)
	if strings.Contains(out, "second") {
		t.Fatalf("duplicate meta kept the later entry: %q", out)
	}
	if !strings.Contains(out, `name="description" content="first"`) {
		t.Fatalf("first meta entry lost: %q", out)
	}
	if !strings.Contains(out, `property="og:title"`) {
		t.Fatalf("property meta lost: %q", out)
	}
	if strings.Contains(out, "keyless") {
		t.Fatalf("keyless meta serialized: %q", out)
	}
}

func TestMetaDeduplicationKeyIgnoresExtraAttributes(t *testing.T) {
	h := head.New()
	h.AddMeta(head.Meta{Name: "robots", Content: "first"})
	h.AddMeta(head.Meta{Name: "robots", Property: "og:robots", Content: "second"})

	out := h.HTML(target.Web)
	if strings.Contains(out, "second") {
		t.Fatalf("same-key meta kept the later entry: %q", out)
	}
	if !strings.Contains(out, `name="robots" content="first"`) {
		t.Fatalf("first meta entry lost: %q", out)
	}
}

func TestLinkDeduplication(t *testing.T) {
	h := head.New()
	h.AddLink(head.Link{Rel: "canonical", Href: "https://example.com/pricing"})
	h.AddLink(head.Link{Rel: "canonical", Href: "https://example.com/pricing"})
	h.AddLink(head.Link{Rel: "preconnect", Href: "https://cdn.example.com"})

	if got := len(h.Links()); got != 2 {
		t.Fatalf("expected 2 links, got %d", got)
	}
	if !h.HasRel("canonical") {
		t.Fatalf("canonical rel not reported")
	}
	if h.HasRel("amphtml") {
		t.Fatalf("unregistered rel reported")
	}
}

func TestScriptsDroppedOnAMP(t *testing.T) {
	h := head.New()
	h.AddScript(head.Script{Src: "/js/widget.js", Async: true})
	h.AddScript(head.Script{Src: "/js/widget.js"})

	web := h.HTML(target.Web)
	if !strings.Contains(web, `<script src="/js/widget.js" async></script>`) {
		t.Fatalf("script missing from web head: %q", web)
	}
	if strings.Count(web, "widget.js") != 1 {
		t.Fatalf("script duplicated: %q", web)
	}

	amp := h.HTML(target.AMP)
	if strings.Contains(amp, "script") {
		t.Fatalf("author script leaked into amp head: %q", amp)
	}
}

func TestHTMLEscapesEntries(t *testing.T) {
	h := head.New()
	h.SetTitle(`Widgets <"amp">`)
	h.AddMeta(head.Meta{Name: "description", Content: `a "quoted" & bracketed <value>`})

	out := h.HTML(target.Web)
	if strings.Contains(out, `"quoted"`) || strings.Contains(out, "<value>") {
		t.Fatalf("unescaped entry: %q", out)
	}
	if !strings.Contains(out, "&lt;&#34;amp&#34;&gt;") {
		t.Fatalf("title not escaped: %q", out)
	}
}
