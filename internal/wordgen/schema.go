package wordgen

import "github.com/abhisek/spellz/internal/llm"

// WordListSchema is the structured output requested from the model.
var WordListSchema = &llm.Schema{
	Name:        "word-list",
	Description: "A themed spelling list for a young learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A short, friendly title for the list",
			},
			"words": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"word": map[string]any{
							"type":        "string",
							"description": "One lowercase English word, letters only",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "A one-sentence clue that does not contain the word",
						},
					},
					"required":             []any{"word", "hint"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "words"},
		"additionalProperties": false,
	},
}
