package words

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ListSchema is the JSON Schema every word list file must satisfy.
var ListSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{
			"type": "string",
		},
		"words": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"word": map[string]any{
						"type":      "string",
						"minLength": 1,
						"pattern":   `\S`,
					},
					"hint": map[string]any{
						"type": "string",
					},
				},
				"required":             []any{"word"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"words"},
	"additionalProperties": false,
}

const listSchemaURL = "schema://word-list.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// listSchema compiles ListSchema once.
func listSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := json.Marshal(ListSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(listSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(listSchemaURL)
	})
	return compiled, compileErr
}

// validateJSON checks a JSON document against ListSchema.
func validateJSON(data []byte) error {
	schema, err := listSchema()
	if err != nil {
		return fmt.Errorf("compile word list schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return schema.Validate(doc)
}
