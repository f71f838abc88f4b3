// Package wordlist shows the words of the loaded list with their hints.
package wordlist

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellz/internal/screen"
	"github.com/abhisek/spellz/internal/ui/layout"
	"github.com/abhisek/spellz/internal/ui/theme"
	"github.com/abhisek/spellz/internal/words"
)

// WordListScreen is a scrollable, read-only view of a word list.
type WordListScreen struct {
	list     words.List
	selected int
	offset   int
	visible  int
}

var (
	_ screen.Screen          = (*WordListScreen)(nil)
	_ screen.KeyHintProvider = (*WordListScreen)(nil)
)

func New(list words.List) *WordListScreen {
	return &WordListScreen{list: list, visible: 10}
}

func (s *WordListScreen) Init() tea.Cmd {
	return nil
}

func (s *WordListScreen) Title() string {
	if s.list.Title != "" {
		return s.list.Title
	}
	return "Word List"
}

func (s *WordListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *WordListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	n := s.list.Len()
	switch kmsg.String() {
	case "up", "k":
		s.selected = max(s.selected-1, 0)
	case "down", "j":
		s.selected = min(s.selected+1, max(n-1, 0))
	case "pgup":
		s.selected = max(s.selected-s.visible, 0)
	case "pgdown":
		s.selected = min(s.selected+s.visible, max(n-1, 0))
	case "home", "g":
		s.selected = 0
	case "end", "G":
		s.selected = max(n-1, 0)
	}
	s.scroll()
	return s, nil
}

// scroll keeps the selected row inside the visible window.
func (s *WordListScreen) scroll() {
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+s.visible {
		s.offset = s.selected - s.visible + 1
	}
}

func (s *WordListScreen) View(width, height int) string {
	if s.list.Len() == 0 {
		return layout.Center(theme.Hint.Render("This list has no words."), width, height)
	}

	// Title, count and scroll markers take four rows.
	s.visible = max(height-6, 3)
	s.scroll()

	numWidth := len(fmt.Sprint(s.list.Len()))
	wordWidth := 0
	for _, e := range s.list.Entries {
		wordWidth = max(wordWidth, lipgloss.Width(e.Word))
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d words", s.list.Len())))
	b.WriteString("\n")
	if s.offset > 0 {
		b.WriteString(theme.Hint.Render("  ▲ more"))
	}
	b.WriteString("\n")

	end := min(s.offset+s.visible, s.list.Len())
	for i := s.offset; i < end; i++ {
		e := s.list.Entries[i]
		row := fmt.Sprintf("%*d. %-*s  %s", numWidth, i+1, wordWidth, e.Word, theme.Hint.Render(e.Hint))
		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ ") + row)
		} else {
			b.WriteString("  " + theme.Body.Render(row))
		}
		b.WriteString("\n")
	}

	if end < s.list.Len() {
		b.WriteString(theme.Hint.Render("  ▼ more"))
	}

	return layout.Center(b.String(), width, height)
}
