package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-ampgen/pkg/target"
)

// Result is the product of one transform pass.
type Result struct {
	// HTML is the rewritten markup.
	HTML []byte
	// Elements lists the AMP custom elements encountered, sorted and
	// unique. Populated on the AMP target only; the document renderer
	// turns it into custom-element script imports.
	Elements []string
	// Styles holds the CSS of style blocks hoisted out of the markup, in
	// document order, ready for registry insertion.
	Styles []string
}

// Transformer rewrites markup fragments per target. The zero configuration
// uses the amp-/web- attribute prefixes and the default element alias
// table; construct variations with the With options.
type Transformer struct {
	ampPrefix string
	webPrefix string
	aliases   map[string]string
	dropAttrs map[string]struct{}
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithPrefixes overrides the attribute prefix pair.
func WithPrefixes(amp, web string) Option {
	return func(t *Transformer) {
		if amp != "" {
			t.ampPrefix = amp
		}
		if web != "" {
			t.webPrefix = web
		}
	}
}

// WithElementAlias adds or overrides a web-target element downgrade, such
// as amp-img to img. An empty webName removes a default alias.
func WithElementAlias(ampName, webName string) Option {
	return func(t *Transformer) {
		if webName == "" {
			delete(t.aliases, ampName)
			return
		}
		t.aliases[ampName] = webName
	}
}

// New creates a Transformer with the default configuration.
func New(opts ...Option) *Transformer {
	t := &Transformer{
		ampPrefix: "amp-",
		webPrefix: "web-",
		aliases: map[string]string{
			"amp-img":    "img",
			"amp-video":  "video",
			"amp-audio":  "audio",
			"amp-iframe": "iframe",
		},
		// AMP layout attributes have no meaning once an element is
		// downgraded for the web.
		dropAttrs: map[string]struct{}{
			"layout":      {},
			"fallback":    {},
			"placeholder": {},
			"noloading":   {},
			"heights":     {},
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var defaultTransformer = New()

// Transform rewrites markup with the default Transformer.
func Transform(src []byte, tgt target.Target) (Result, error) {
	return defaultTransformer.Transform(src, tgt)
}

// voidElements never take an end tag; when an AMP element downgrades onto
// one, the source end tag has to be swallowed.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "source": {},
	"track": {}, "wbr": {},
}

// Transform rewrites a markup fragment for the given target.
func (t *Transformer) Transform(src []byte, tgt target.Target) (Result, error) {
	if !tgt.Valid() {
		return Result{}, fmt.Errorf("markup: invalid target %q", tgt)
	}

	var (
		out      bytes.Buffer
		res      Result
		elements = map[string]struct{}{}
		skipEnd  = map[string]int{}
		// Raw-text capture state for style hoisting and AMP script
		// removal.
		capturing  bool
		captureTag string
		captureCSS strings.Builder
	)

	z := html.NewTokenizer(bytes.NewReader(src))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return Result{}, fmt.Errorf("markup: tokenize: %w", err)
			}
			res.HTML = out.Bytes()
			res.Elements = sortedKeys(elements)
			return res, nil

		case html.TextToken:
			if capturing {
				if captureTag == "style" {
					captureCSS.Write(z.Text())
				}
				continue
			}
			out.Write(z.Raw())

		case html.CommentToken, html.DoctypeToken:
			out.Write(z.Raw())

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			name := tok.Data
			selfClosing := tt == html.SelfClosingTagToken

			switch {
			case name == "style":
				// Hoisted on both targets; the registry decides whether
				// the CSS is new.
				if !selfClosing {
					capturing, captureTag = true, "style"
					captureCSS.Reset()
				}
				continue
			case name == "script" && tgt == target.AMP:
				// AMP documents carry no author scripts.
				if !selfClosing {
					capturing, captureTag = true, "script"
				}
				continue
			}

			if strings.HasPrefix(name, "amp-") {
				if tgt == target.AMP {
					elements[name] = struct{}{}
				} else if alias, ok := t.aliases[name]; ok {
					if _, void := voidElements[alias]; void && !selfClosing {
						skipEnd[name]++
					}
					name = alias
				}
			}

			attrs := t.rewriteAttrs(tok.Attr, tgt, name != tok.Data)
			writeTag(&out, name, attrs, selfClosing)

		case html.EndTagToken:
			tok := z.Token()
			name := tok.Data

			if capturing && name == captureTag {
				if captureTag == "style" {
					if css := strings.TrimSpace(captureCSS.String()); css != "" {
						res.Styles = append(res.Styles, css)
					}
				}
				capturing, captureTag = false, ""
				continue
			}
			if capturing {
				continue
			}

			if strings.HasPrefix(name, "amp-") && tgt == target.Web {
				if n := skipEnd[name]; n > 0 {
					skipEnd[name] = n - 1
					continue
				}
				if alias, ok := t.aliases[name]; ok {
					name = alias
				}
			}
			out.WriteString("</" + name + ">")
		}
	}
}

type attr struct {
	key      string
	val      string
	prefixed bool
}

// rewriteAttrs applies the prefix rules in source order. A prefixed
// attribute claims its unwrapped name on its target: plain attributes
// never overwrite it, later prefixed attributes do.
func (t *Transformer) rewriteAttrs(in []html.Attribute, tgt target.Target, aliased bool) []attr {
	out := make([]attr, 0, len(in))
	index := map[string]int{}

	for _, a := range in {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}

		prefixed := false
		switch {
		case strings.HasPrefix(key, t.ampPrefix):
			if tgt != target.AMP {
				continue
			}
			key = rewriteAMPAttr(strings.TrimPrefix(key, t.ampPrefix))
			prefixed = true
		case strings.HasPrefix(key, t.webPrefix):
			if tgt != target.Web {
				continue
			}
			key = strings.TrimPrefix(key, t.webPrefix)
			prefixed = true
		default:
			if aliased {
				if _, drop := t.dropAttrs[key]; drop {
					continue
				}
			}
		}
		if key == "" {
			continue
		}

		if i, ok := index[key]; ok {
			if prefixed || !out[i].prefixed {
				out[i].val = a.Val
				out[i].prefixed = out[i].prefixed || prefixed
			}
			continue
		}
		index[key] = len(out)
		out = append(out, attr{key: key, val: a.Val, prefixed: prefixed})
	}
	return out
}

// rewriteAMPAttr maps an unwrapped amp- attribute name onto AMP's own
// syntax: bind-<prop> becomes the [<prop>] binding form, everything else
// keeps its bare name (amp-on is simply on).
func rewriteAMPAttr(name string) string {
	if prop, ok := strings.CutPrefix(name, "bind-"); ok && prop != "" {
		return "[" + prop + "]"
	}
	return name
}

func writeTag(out *bytes.Buffer, name string, attrs []attr, selfClosing bool) {
	out.WriteString("<" + name)
	for _, a := range attrs {
		out.WriteString(" " + a.key)
		if a.val != "" {
			out.WriteString(`="` + html.EscapeString(a.val) + `"`)
		}
	}
	if selfClosing {
		out.WriteString("/>")
		return
	}
	out.WriteString(">")
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
