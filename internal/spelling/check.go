// Package spelling decides whether an answer attempt spells the target word.
//
// Typed and spoken answers both go through Check, so the two input
// modalities can never disagree about what counts as correct.
package spelling

import "strings"

// Result is the outcome of comparing one answer attempt against a target.
type Result struct {
	// Match is true when the normalized input equals the normalized target.
	Match bool

	// Input is the normalized answer attempt.
	Input string

	// Target is the normalized target word.
	Target string
}

// Normalize prepares text for comparison.
//
// Rules:
// - Leading and trailing whitespace is trimmed
// - Letters are lowercased
//
// Nothing else changes: punctuation, inner spaces and accents are kept, so
// "ice-cream" never matches "icecream".
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Check compares an answer attempt against the target word.
func Check(input, target string) Result {
	in := Normalize(input)
	want := Normalize(target)
	return Result{
		Match:  in == want,
		Input:  in,
		Target: want,
	}
}
