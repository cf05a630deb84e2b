// Package head aggregates the document head entries a render produces.
// Components contribute title, meta, and link entries while rendering; the
// document shell serializes the collected set once. Like the style
// registry, a Head is scoped to a single request or exported page.
package head

import (
	"html"
	"strings"
	"sync"

	"github.com/goliatone/go-ampgen/pkg/target"
)

// Meta is a name/content or property/content meta entry.
type Meta struct {
	Name     string
	Property string
	Content  string
}

// Link is a link element entry.
type Link struct {
	Rel   string
	Href  string
	Type  string
	Media string
}

// Script is an external script entry. AMP documents never emit author
// scripts, so scripts only surface on the web target.
type Script struct {
	Src   string
	Async bool
	Defer bool
}

// Head collects head entries in insertion order with de-duplication. Meta
// entries collapse by name or property, links by rel and href, and the
// title is last-writer-wins. Runtime scaffolding (charset, viewport, AMP
// boilerplate) belongs to the document shell, not here.
type Head struct {
	mu      sync.Mutex
	title   string
	metas   []Meta
	links   []Link
	scripts []Script
}

// New creates an empty head collector.
func New() *Head {
	return &Head{}
}

// SetTitle replaces the document title. The last writer wins, so page-level
// titles set after component renders take precedence.
func (h *Head) SetTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.title = title
}

// Title returns the current document title.
func (h *Head) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

// AddMeta registers a meta entry. Entries sharing a name or property key
// keep the first registration.
func (h *Head) AddMeta(m Meta) {
	key := m.Name
	if key == "" {
		key = m.Property
	}
	if key == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, existing := range h.metas {
		existingKey := existing.Name
		if existingKey == "" {
			existingKey = existing.Property
		}
		if existingKey == key {
			return
		}
	}
	h.metas = append(h.metas, m)
}

// AddLink registers a link entry, de-duplicated by rel and href.
func (h *Head) AddLink(l Link) {
	if l.Rel == "" || l.Href == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, existing := range h.links {
		if existing.Rel == l.Rel && existing.Href == l.Href {
			return
		}
	}
	h.links = append(h.links, l)
}

// AddScript registers an external script entry, de-duplicated by src.
func (h *Head) AddScript(s Script) {
	if s.Src == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, existing := range h.scripts {
		if existing.Src == s.Src {
			return
		}
	}
	h.scripts = append(h.scripts, s)
}

// HasRel reports whether a link with the given rel is registered.
func (h *Head) HasRel(rel string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, l := range h.links {
		if l.Rel == rel {
			return true
		}
	}
	return false
}

// Links returns a copy of the registered link entries.
func (h *Head) Links() []Link {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Link, len(h.links))
	copy(out, h.links)
	return out
}

// HTML serializes the collected entries: title, metas, links, then scripts.
// Author scripts are dropped on the AMP target.
func (h *Head) HTML(t target.Target) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var b strings.Builder
	if h.title != "" {
		b.WriteString("<title>" + html.EscapeString(h.title) + "</title>\n")
	}
	for _, m := range h.metas {
		b.WriteString("<meta ")
		if m.Name != "" {
			b.WriteString(`name="` + html.EscapeString(m.Name) + `" `)
		}
		if m.Property != "" {
			b.WriteString(`property="` + html.EscapeString(m.Property) + `" `)
		}
		b.WriteString(`content="` + html.EscapeString(m.Content) + `">` + "\n")
	}
	for _, l := range h.links {
		b.WriteString(`<link rel="` + html.EscapeString(l.Rel) + `" href="` + html.EscapeString(l.Href) + `"`)
		if l.Type != "" {
			b.WriteString(` type="` + html.EscapeString(l.Type) + `"`)
		}
		if l.Media != "" {
			b.WriteString(` media="` + html.EscapeString(l.Media) + `"`)
		}
		b.WriteString(">\n")
	}
	if t != target.AMP {
		for _, s := range h.scripts {
			b.WriteString(`<script src="` + html.EscapeString(s.Src) + `"`)
			if s.Async {
				b.WriteString(" async")
			}
			if s.Defer {
				b.WriteString(" defer")
			}
			b.WriteString("></script>\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
