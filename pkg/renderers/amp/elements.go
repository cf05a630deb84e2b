package amp

import (
	"html"
	"strings"
)

// RuntimeSrc is the AMP runtime every document imports.
const RuntimeSrc = "https://cdn.ampproject.org/v0.js"

// Boilerplate is the mandatory AMP boilerplate style/noscript pair,
// byte-for-byte as the AMP HTML spec prints it.
const Boilerplate = `<style amp-boilerplate>body{-webkit-animation:-amp-start 8s steps(1,end) 0s 1 normal both;-moz-animation:-amp-start 8s steps(1,end) 0s 1 normal both;-ms-animation:-amp-start 8s steps(1,end) 0s 1 normal both;animation:-amp-start 8s steps(1,end) 0s 1 normal both}@-webkit-keyframes -amp-start{from{visibility:hidden}to{visibility:visible}}@-moz-keyframes -amp-start{from{visibility:hidden}to{visibility:visible}}@-ms-keyframes -amp-start{from{visibility:hidden}to{visibility:visible}}@-o-keyframes -amp-start{from{visibility:hidden}to{visibility:visible}}@keyframes -amp-start{from{visibility:hidden}to{visibility:visible}}</style><noscript><style amp-boilerplate>body{-webkit-animation:none;-moz-animation:none;-ms-animation:none;animation:none}</style></noscript>`

// builtinElements ship inside the runtime and never take their own script.
var builtinElements = map[string]struct{}{
	"amp-img":    {},
	"amp-layout": {},
	"amp-pixel":  {},
}

// elementVersions pins the script version for elements that moved past 0.1.
// Everything absent resolves to defaultElementVersion.
var elementVersions = map[string]string{
	"amp-mustache": "0.2",
}

const defaultElementVersion = "0.1"

// ElementScripts serializes one custom-element script import per element,
// skipping runtime builtins. Input order is preserved.
func ElementScripts(elements []string) string {
	var b strings.Builder
	for _, el := range elements {
		if el == "" {
			continue
		}
		if _, builtin := builtinElements[el]; builtin {
			continue
		}
		version := elementVersions[el]
		if version == "" {
			version = defaultElementVersion
		}
		b.WriteString(`<script async custom-element="` + html.EscapeString(el) + `" src="https://cdn.ampproject.org/v0/` + html.EscapeString(el) + `-` + version + `.js"></script>` + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
