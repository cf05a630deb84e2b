package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-ampgen/pkg/template"
	"github.com/goliatone/go-ampgen/pkg/testsupport"
)

//go:embed testdata/templates/*.html
var embeddedTemplates embed.FS

func newEngine(t *testing.T) *template.Engine {
	t.Helper()

	sub, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := template.New(template.WithFS(sub))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": " Ada "}, w)
	})

	golden := filepath.Join("testdata", "goldens", "hello.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(result)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString("Hi {{ who }}", map[string]any{"who": "there"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "Hi there" {
		t.Fatalf("render string: got %q", got)
	}
}

func TestEngine_RenderDispatch(t *testing.T) {
	engine := newEngine(t)

	inline, err := engine.Render("{{ 1 + 1 }}", nil)
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	if inline != "2" {
		t.Fatalf("inline dispatch: got %q", inline)
	}

	byName, err := engine.Render("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render by name: %v", err)
	}
	if byName != "Hello Ada!" {
		t.Fatalf("path dispatch: got %q", byName)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("global context: got %q", got)
	}
}

func TestEngine_CSSVarFilter(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("tokens", map[string]any{
		"token": "brand.accent",
		"other": "surface",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "color: var(--brand-accent); background: var(--surface, #fff);"
	if got != want {
		t.Fatalf("cssvar filter\nwant: %q\n got: %q", want, got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	got, err := engine.RenderString("{{ word|shout }}", map[string]any{"word": "amp"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "AMP!" {
		t.Fatalf("custom filter: got %q", got)
	}

	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("duplicate filter registration succeeded")
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("does-not-exist", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestNew_DefaultEngineRendersStrings(t *testing.T) {
	engine, err := template.New()
	if err != nil {
		t.Fatalf("new engine without loaders: %v", err)
	}

	got, err := engine.RenderString("Hello {{ name }}!", map[string]any{"name": "amp"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "Hello amp!" {
		t.Fatalf("render string: got %q", got)
	}
}
