// Package props exposes the public contract for component props schemas.
// The compile and validation machinery lives under internal/propschema to
// keep schema-engine dependencies hidden from consumers.
package props

import (
	"fmt"

	"github.com/goliatone/go-ampgen/internal/propschema"
)

// Schema is a compiled props contract. A nil Schema admits any value.
type Schema struct {
	compiled *propschema.Compiled
	raw      map[string]any
}

// Compile builds a Schema from a manifest's props mapping.
func Compile(raw map[string]any) (*Schema, error) {
	compiled, err := propschema.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("props: %w", err)
	}
	return &Schema{compiled: compiled, raw: cloneMap(raw)}, nil
}

// Validate checks a props value against the schema. Errors name the
// offending field path.
func (s *Schema) Validate(value map[string]any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(value); err != nil {
		return fmt.Errorf("props: %w", err)
	}
	return nil
}

// Raw returns a copy of the schema definition as declared in the manifest.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return cloneMap(s.raw)
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
