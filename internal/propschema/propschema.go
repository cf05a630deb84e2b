// Package propschema compiles and evaluates the JSON-Schema-shaped props
// contracts component manifests declare. kin-openapi stays confined here;
// consumers only see pkg/props.
package propschema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Compiled is a validated, ready-to-evaluate props schema.
type Compiled struct {
	schema *openapi3.Schema
}

// Compile builds a Compiled schema from the raw manifest mapping. The
// schema itself is validated, so a manifest typo fails at catalog load
// rather than first render.
func Compile(raw map[string]any) (*Compiled, error) {
	if len(raw) == 0 {
		return nil, errors.New("propschema: schema definition is empty")
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("propschema: encode schema: %w", err)
	}

	var schema openapi3.Schema
	if err := schema.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("propschema: decode schema: %w", err)
	}
	if err := schema.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("propschema: invalid schema: %w", err)
	}

	return &Compiled{schema: &schema}, nil
}

// Validate evaluates a props value against the schema. The value is
// normalized through a JSON round-trip first so Go-native numbers and
// nested structs compare the way a decoded request body would.
func (c *Compiled) Validate(value any) error {
	if c == nil || c.schema == nil {
		return nil
	}

	normalized, err := normalize(value)
	if err != nil {
		return fmt.Errorf("propschema: encode props: %w", err)
	}

	if err := c.schema.VisitJSON(normalized); err != nil {
		var schemaErr *openapi3.SchemaError
		if errors.As(err, &schemaErr) {
			return fmt.Errorf("propschema: %s: %s", pointer(schemaErr), schemaErr.Reason)
		}
		return fmt.Errorf("propschema: %w", err)
	}
	return nil
}

func normalize(value any) (any, error) {
	if value == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func pointer(err *openapi3.SchemaError) string {
	parts := err.JSONPointer()
	if len(parts) == 0 {
		return "(root)"
	}
	return strings.Join(parts, ".")
}
