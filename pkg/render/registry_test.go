package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ampgen/pkg/render"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (s stubRenderer) Render(_ context.Context, doc render.Document) ([]byte, error) {
	return doc.Body, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := render.NewRegistry()

	if err := reg.Register(stubRenderer{name: "web"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(stubRenderer{name: "amp"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := reg.Register(stubRenderer{name: "web"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatal("expected nil renderer error")
	}
	if err := reg.Register(stubRenderer{}); err == nil {
		t.Fatal("expected empty name error")
	}

	got, err := reg.Get("amp")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "amp" {
		t.Fatalf("unexpected renderer %q", got.Name())
	}

	if _, err := reg.Get("pdf"); err == nil {
		t.Fatal("expected missing renderer error")
	}
}

func TestRegistryListAndHas(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "web"})
	reg.MustRegister(stubRenderer{name: "amp"})

	if diff := cmp.Diff([]string{"amp", "web"}, reg.List()); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("web") {
		t.Error("expected Has(web)")
	}
	if reg.Has("pdf") {
		t.Error("unexpected Has(pdf)")
	}
}

func TestRegistryMustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	render.NewRegistry().MustGet("missing")
}
