package llm

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD price of one request.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost returns pricing for a model ID, or nil if it is not listed.
func LookupCost(modelID string) *ModelCost {
	c, ok := modelCosts[modelID]
	if !ok {
		return nil
	}
	return &c
}

// Only the models reachable through the aliases and defaults are listed.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":            {1, 5},
	"claude-haiku-4-5-20251001":   {1, 5},
	"claude-sonnet-4-5":           {3, 15},
	"claude-sonnet-4-5-20250929":  {3, 15},
	"gpt-4o":                      {2.5, 10},
	"gpt-4o-mini":                 {0.15, 0.6},
	"gpt-4o-mini-2024-07-18":      {0.15, 0.6},
	"gemini-2.5-flash":            {0.3, 2.5},
	"gemini-2.5-flash-lite":       {0.1, 0.4},
	"google/gemini-2.0-flash-001": {0.1, 0.4},
}
