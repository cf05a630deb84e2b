// Package target names the two output flavors a component tree renders to
// and carries the small helpers the rest of the module keys on: a parsing
// enum, the two-argument conditional, and target-split file resolution.
package target

import (
	"fmt"
	"path"
	"strings"
)

// Target is an output build target.
type Target string

const (
	// Web is the standard HTML5 output target.
	Web Target = "web"
	// AMP is the Accelerated Mobile Pages output target.
	AMP Target = "amp"
)

// All returns the known targets in stable order: web, then amp.
func All() []Target {
	return []Target{Web, AMP}
}

// Parse resolves a target from user input, case-insensitively. Unknown
// names are an error rather than a default; a build writing to the wrong
// flavor is worse than one that refuses to start.
func Parse(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Web):
		return Web, nil
	case string(AMP):
		return AMP, nil
	case "":
		return "", fmt.Errorf("target: empty target")
	}
	return "", fmt.Errorf("target: unknown target %q", s)
}

// Valid reports whether t is a known target.
func (t Target) Valid() bool {
	return t == Web || t == AMP
}

// String returns the target's wire name.
func (t Target) String() string {
	return string(t)
}

// Pick returns web for the web target and amp otherwise. It is the
// conditional components reach for when a value, not markup, differs
// between targets.
func Pick[T any](t Target, web, amp T) T {
	if t == Web {
		return web
	}
	return amp
}

// Variants returns the candidate file paths for a target, most specific
// first: name.amp.ext then name.ext for AMP, name.web.ext then name.ext
// for web. A path that already carries a target infix is returned as-is.
func Variants(p string, t Target) []string {
	if p == "" {
		return nil
	}

	ext := path.Ext(p)
	base := strings.TrimSuffix(p, ext)
	for _, known := range All() {
		if strings.HasSuffix(base, "."+string(known)) {
			return []string{p}
		}
	}

	return []string{base + "." + string(t) + ext, p}
}
