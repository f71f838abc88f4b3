package wordgen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/abhisek/spellz/internal/spelling"
	"github.com/abhisek/spellz/internal/words"
)

// Validator checks a drafted list.
type Validator interface {
	Name() string
	Validate(list words.List, input Input) *ValidationError
}

// ValidationError says why a draft was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks the count and the shape of every word.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(list words.List, input Input) *ValidationError {
	if input.Count > 0 && list.Len() != input.Count {
		return &ValidationError{v.Name(), fmt.Sprintf("got %d words, want %d", list.Len(), input.Count)}
	}
	for _, e := range list.Entries {
		if e.Word == "" {
			return &ValidationError{v.Name(), "empty word"}
		}
		if len(e.Word) > 20 {
			return &ValidationError{v.Name(), fmt.Sprintf("word %q is too long", e.Word)}
		}
		if strings.IndexFunc(e.Word, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
			return &ValidationError{v.Name(), fmt.Sprintf("word %q is not letters only", e.Word)}
		}
	}
	return nil
}

// HintValidator rejects missing hints and hints that give the word away.
type HintValidator struct{}

func (v *HintValidator) Name() string { return "hint" }

func (v *HintValidator) Validate(list words.List, _ Input) *ValidationError {
	for _, e := range list.Entries {
		hint := spelling.Normalize(e.Hint)
		if hint == "" {
			return &ValidationError{v.Name(), fmt.Sprintf("word %q has no hint", e.Word)}
		}
		if len(hint) > 160 {
			return &ValidationError{v.Name(), fmt.Sprintf("hint for %q is too long", e.Word)}
		}
		if strings.Contains(hint, e.Word) {
			return &ValidationError{v.Name(), fmt.Sprintf("hint for %q contains the word", e.Word)}
		}
	}
	return nil
}

// ExcludeValidator rejects words from Input.Exclude.
type ExcludeValidator struct{}

func (v *ExcludeValidator) Name() string { return "exclude" }

func (v *ExcludeValidator) Validate(list words.List, input Input) *ValidationError {
	excluded := lo.SliceToMap(input.Exclude, func(w string) (string, struct{}) {
		return spelling.Normalize(w), struct{}{}
	})
	hits := lo.Filter(list.Words(), func(w string, _ int) bool {
		_, ok := excluded[w]
		return ok
	})
	if len(hits) > 0 {
		return &ValidationError{v.Name(), "excluded words returned: " + strings.Join(hits, ", ")}
	}
	return nil
}
