package wordgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a primary school teacher writing weekly spelling lists for children aged 6 to 10.

Rules:
- Every word is a single common English word in lowercase, letters only. No names, no hyphens, no apostrophes.
- Pick words that fit the theme and the grade. Mix easy and slightly tricky spellings.
- Each hint is one short sentence a child can understand. Never include the word itself, or an obvious form of it, in the hint.
- Return exactly the number of words asked for.
- Do not use any word from the "exclude" list.`

func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	theme := input.Theme
	if theme == "" {
		theme = "everyday words"
	}
	fmt.Fprintf(&b, "Theme: %s\n", theme)
	if input.Grade > 0 {
		fmt.Fprintf(&b, "Grade: %d\n", input.Grade)
	} else {
		b.WriteString("Grade: any primary grade\n")
	}
	fmt.Fprintf(&b, "Number of words: %d\n", input.Count)

	b.WriteString("\nExclude:\n")
	b.WriteString(buildExclude(input.Exclude, cfg.MaxExclude))
	return b.String()
}

// buildExclude lists the last max words of exclude, or "None".
func buildExclude(exclude []string, max int) string {
	if len(exclude) == 0 {
		return "None"
	}
	if max > 0 && len(exclude) > max {
		exclude = exclude[len(exclude)-max:]
	}
	return "- " + strings.Join(exclude, "\n- ")
}
