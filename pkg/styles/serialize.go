package styles

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-ampgen/pkg/target"
)

// ErrBudgetExceeded reports that the aggregate CSS no longer fits the byte
// budget. Callers can match it with errors.Is to distinguish an oversized
// page from other serialization failures.
var ErrBudgetExceeded = errors.New("style budget exceeded")

// StyleTag serializes the aggregate CSS as the style element the document
// shell embeds. On the AMP target the tag is the mandatory single
// amp-custom block and the registry's byte budget is enforced; on web the
// tag carries a data attribute so a later render can locate it. An empty
// registry serializes to an empty string.
func (r *Registry) StyleTag(t target.Target) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.fragments) == 0 {
		return "", nil
	}
	if t == target.AMP {
		if r.budget > 0 && r.size() > r.budget {
			return "", fmt.Errorf("styles: amp-custom is %d bytes with a %d byte budget: %w", r.size(), r.budget, ErrBudgetExceeded)
		}
		return "<style amp-custom>" + r.css() + "</style>", nil
	}
	return `<style data-ampgen>` + r.css() + `</style>`, nil
}

// HydrationTag serializes the inserted id-set as a JSON script tag. A later
// render parses it back with ParseHydration and seeds its registry so
// already-delivered styles are not inserted again. Web output only; an AMP
// document never carries it.
func (r *Registry) HydrationTag() string {
	ids := r.IDs()
	if len(ids) == 0 {
		return ""
	}
	payload, _ := json.Marshal(ids)
	return `<script type="application/json" data-ampgen-ids>` + string(payload) + `</script>`
}

// ParseHydration decodes the JSON payload of a hydration tag back into the
// id-set it was serialized from.
func ParseHydration(data []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("styles: parse hydration payload: %w", err)
	}
	return ids, nil
}
