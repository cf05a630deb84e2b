// Package sanitize cleans author-provided HTML before it reaches component
// templates. Props flagged as rich text pass through Fragment; plain-text
// surfaces such as titles and meta content use Text.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Fragment cleans an HTML fragment down to user-generated-content rules:
// structural and inline text elements survive, scripts, event handlers, and
// unknown protocols do not. Links come back with rel="nofollow".
func Fragment(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := strings.TrimSpace(fragmentSanitizer().Sanitize(trimmed))
	return cleaned
}

// Text strips markup entirely, leaving text content only.
func Text(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(textSanitizer().Sanitize(trimmed))
}

func fragmentSanitizer() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.AllowAttrs("width", "height", "alt").OnElements("img")
		fragmentPolicy = policy
	})
	return fragmentPolicy
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
