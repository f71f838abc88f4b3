// Package words loads the ordered word lists a practice run walks through.
package words

// Entry is one word to practise. Entries are immutable once loaded.
type Entry struct {
	// Word is the target spelling. Never empty; compared case-insensitively.
	Word string `json:"word" yaml:"word"`

	// Hint is a short clue shown alongside the spoken word.
	Hint string `json:"hint" yaml:"hint"`
}

// List is an ordered word list, loaded once and read-only afterwards.
type List struct {
	Title   string  `json:"title,omitempty" yaml:"title,omitempty"`
	Entries []Entry `json:"words" yaml:"words"`
}

// Len returns the number of entries.
func (l List) Len() int {
	return len(l.Entries)
}

// Words returns the target words in order.
func (l List) Words() []string {
	out := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		out[i] = e.Word
	}
	return out
}
