package catalog

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-ampgen/pkg/props"
	"github.com/goliatone/go-ampgen/pkg/styles"
	"github.com/goliatone/go-ampgen/pkg/target"
)

// ErrNotFound reports a lookup for a component the catalog does not hold.
var ErrNotFound = errors.New("component not found")

// ErrNoMarkup reports a component that ships no markup for the requested
// target.
var ErrNoMarkup = errors.New("no markup for target")

// Component is one loaded catalog entry. Values handed out by the store
// share their backing slices and maps; treat them as read-only.
type Component struct {
	// Name is the component's directory name and identity.
	Name string
	// Doc is the manifest's description, if any.
	Doc string
	// Uses lists the components this one renders through, in manifest
	// order.
	Uses []string
	// Styles holds the component's CSS fragments in registration order,
	// with ids of the form <component>/<file>.
	Styles []styles.Fragment
	// Schema is the compiled props contract; nil admits any props.
	Schema *props.Schema

	markup       map[target.Target]string
	markupSource map[target.Target]string
}

// MarkupFor returns the markup template effective for a target: the
// target-split variant when the component ships one, otherwise the shared
// file.
func (c Component) MarkupFor(t target.Target) (string, error) {
	if m, ok := c.markup[t]; ok {
		return m, nil
	}
	return "", fmt.Errorf("catalog: component %q: %w %q", c.Name, ErrNoMarkup, t)
}

// MarkupSource names the file MarkupFor resolved for a target. Empty when
// the target has no markup.
func (c Component) MarkupSource(t target.Target) string {
	return c.markupSource[t]
}
