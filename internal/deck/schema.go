package deck

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://rote/deck.json"

// deckSchema describes the on-disk record format. Unknown keys are allowed
// and dropped on decode.
var deckSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "array",
	"items": map[string]any{
		"oneOf": []any{
			map[string]any{"$ref": "#/$defs/atomic"},
			map[string]any{"$ref": "#/$defs/sequence"},
		},
	},
	"$defs": map[string]any{
		"fields": map[string]any{
			"type":     "object",
			"required": []any{"question", "answer", "score"},
			"properties": map[string]any{
				"question":       map[string]any{"type": "string"},
				"answer":         map[string]any{"type": "string"},
				"score":          map[string]any{"type": "integer"},
				"note":           map[string]any{"type": []any{"string", "null"}},
				"previous_raise": map[string]any{"type": "integer", "minimum": 0},
			},
		},
		"atomic": map[string]any{
			"allOf":    []any{map[string]any{"$ref": "#/$defs/fields"}},
			"required": []any{"type"},
			"properties": map[string]any{
				"type": map[string]any{"const": "atomic"},
			},
		},
		"sequence": map[string]any{
			"type":     "object",
			"required": []any{"type", "content"},
			"properties": map[string]any{
				"type": map[string]any{"const": "sequence"},
				"content": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"$ref": "#/$defs/fields"},
				},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the Go map
		// through encoding/json to normalize its types.
		raw, err := json.Marshal(deckSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validate checks a decoded JSON document against the deck schema.
func validate(doc any) error {
	sch, err := schema()
	if err != nil {
		return fmt.Errorf("compile deck schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	return nil
}
