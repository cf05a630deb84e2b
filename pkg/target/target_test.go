package target_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ampgen/pkg/target"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    target.Target
		wantErr bool
	}{
		{in: "web", want: target.Web},
		{in: "amp", want: target.AMP},
		{in: "AMP", want: target.AMP},
		{in: "  Web ", want: target.Web},
		{in: "", wantErr: true},
		{in: "pdf", wantErr: true},
	}

	for _, tc := range cases {
		got, err := target.Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, tgt := range target.All() {
		if !tgt.Valid() {
			t.Errorf("%q should be valid", tgt)
		}
	}
	if target.Target("pdf").Valid() {
		t.Error("pdf should not be valid")
	}
	if target.Target("").Valid() {
		t.Error("empty target should not be valid")
	}
}

func TestAllOrder(t *testing.T) {
	want := []target.Target{target.Web, target.AMP}
	if diff := cmp.Diff(want, target.All()); diff != "" {
		t.Errorf("All() order mismatch (-want +got):\n%s", diff)
	}
}

func TestPick(t *testing.T) {
	if got := target.Pick(target.Web, "a", "b"); got != "a" {
		t.Errorf("Pick(web) = %q, want a", got)
	}
	if got := target.Pick(target.AMP, "a", "b"); got != "b" {
		t.Errorf("Pick(amp) = %q, want b", got)
	}
	if got := target.Pick(target.Web, 1, 2); got != 1 {
		t.Errorf("Pick(web) = %d, want 1", got)
	}
}

func TestVariants(t *testing.T) {
	cases := []struct {
		path string
		tgt  target.Target
		want []string
	}{
		{
			path: "hero/hero.html",
			tgt:  target.AMP,
			want: []string{"hero/hero.amp.html", "hero/hero.html"},
		},
		{
			path: "hero/hero.html",
			tgt:  target.Web,
			want: []string{"hero/hero.web.html", "hero/hero.html"},
		},
		{
			path: "hero/hero.amp.html",
			tgt:  target.AMP,
			want: []string{"hero/hero.amp.html"},
		},
		{
			path: "hero/hero.web.html",
			tgt:  target.AMP,
			want: []string{"hero/hero.web.html"},
		},
		{
			path: "",
			tgt:  target.Web,
			want: nil,
		},
	}

	for _, tc := range cases {
		got := target.Variants(tc.path, tc.tgt)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Variants(%q, %q) mismatch (-want +got):\n%s", tc.path, tc.tgt, diff)
		}
	}
}
