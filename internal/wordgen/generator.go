// Package wordgen drafts new word lists with a language model.
package wordgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/spellz/internal/llm"
	"github.com/abhisek/spellz/internal/spelling"
	"github.com/abhisek/spellz/internal/words"
)

// Generator produces word lists.
type Generator interface {
	// Generate returns a list that passed every configured validator.
	Generate(ctx context.Context, input Input) (words.List, error)
}

// Input describes the list to draft.
type Input struct {
	// Theme is a topic such as "animals" or "the beach".
	Theme string

	// Grade is the school grade of the learner, 1-5. Zero means any.
	Grade int

	// Count is how many words to return.
	Count int

	// Exclude lists words that must not appear, typically last week's list.
	Exclude []string
}

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type listOutput struct {
	Title string `json:"title"`
	Words []struct {
		Word string `json:"word"`
		Hint string `json:"hint"`
	} `json:"words"`
}

func (g *LLMGenerator) Generate(ctx context.Context, input Input) (words.List, error) {
	if input.Count <= 0 {
		input.Count = g.config.DefaultCount
	}
	if input.Count > g.config.MaxCount {
		return words.List{}, fmt.Errorf("count %d exceeds the maximum of %d", input.Count, g.config.MaxCount)
	}

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, "wordgen"), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)}},
		Schema:      WordListSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return words.List{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out listOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return words.List{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	list := words.List{Title: out.Title}
	for _, w := range out.Words {
		list.Entries = append(list.Entries, words.Entry{
			Word: spelling.Normalize(w.Word),
			Hint: w.Hint,
		})
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(list, input); verr != nil {
			return words.List{}, verr
		}
	}
	if err := words.Validate(list); err != nil {
		return words.List{}, err
	}
	return list, nil
}
