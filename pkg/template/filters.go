package template

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("cssvar") {
		_ = pongo2.RegisterFilter("cssvar", filterCSSVar)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterCSSVar maps a theme token name onto its custom-property reference:
// {{ "brand.accent"|cssvar }} renders var(--brand-accent), and a parameter
// becomes the fallback value, var(--brand-accent, #fff).
func filterCSSVar(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	name := strings.TrimSpace(in.String())
	if name == "" {
		return pongo2.AsValue(""), nil
	}
	name = strings.ReplaceAll(name, ".", "-")
	if param != nil && param.String() != "" {
		return pongo2.AsValue("var(--" + name + ", " + param.String() + ")"), nil
	}
	return pongo2.AsValue("var(--" + name + ")"), nil
}
