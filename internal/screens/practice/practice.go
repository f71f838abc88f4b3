// Package practice is the screen where the learner spells the words of the
// list by typing or speaking.
package practice

import (
	tea "charm.land/bubbletea/v2"

	prac "github.com/abhisek/spellz/internal/practice"
	"github.com/abhisek/spellz/internal/router"
	"github.com/abhisek/spellz/internal/screen"
	"github.com/abhisek/spellz/internal/ui/components"
	"github.com/abhisek/spellz/internal/ui/layout"
)

const maxWordLen = 32

// PracticeScreen renders the coordinator state and turns keys into
// coordinator operations. It never shows the word being practised.
type PracticeScreen struct {
	coord   *prac.Coordinator
	learner string
	input   components.AnswerInput
	snap    prac.Snapshot
	spoken  bool
}

var (
	_ screen.Screen          = (*PracticeScreen)(nil)
	_ screen.KeyHintProvider = (*PracticeScreen)(nil)
	_ screen.Leaver          = (*PracticeScreen)(nil)
)

// New creates the screen for coord. learner personalises the praise.
func New(coord *prac.Coordinator, learner string) *PracticeScreen {
	s := &PracticeScreen{
		coord:   coord,
		learner: learner,
		input:   components.NewAnswerInput("type the word...", maxWordLen),
	}
	s.snap = coord.Snapshot()
	s.input.SetValue(s.snap.Input)
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	if !s.snap.Completed {
		s.coord.SpeakTarget()
		s.spoken = true
	}
	return s.input.Init()
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.snap.Completed {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Home"},
			{Key: "Ctrl+R", Description: "Again"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "Ctrl+S", Description: "Hear word"},
		{Key: "Ctrl+L", Description: "Speak"},
	}
	if s.snap.Input != "" {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+U", Description: "Clear"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ChangedMsg:
		s.refresh()
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd, _ = s.input.Update(msg)
	return s, cmd
}

func (s *PracticeScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if s.snap.Completed {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.coord.SubmitTyped()
	case "ctrl+l":
		s.coord.ToggleListening()
	case "ctrl+s":
		s.coord.SpeakTarget()
	case "ctrl+u":
		s.coord.Clear()
	case "ctrl+r":
		s.coord.Reset()
	default:
		var cmd tea.Cmd
		var changed bool
		s.input, cmd, changed = s.input.Update(msg)
		if changed {
			s.coord.UpdateTyped(s.input.Value())
		}
		s.refresh()
		return cmd
	}
	s.refresh()
	return nil
}

// Leave abandons a capture that is still open.
func (s *PracticeScreen) Leave() tea.Cmd {
	s.coord.CancelListening()
	return nil
}

// refresh pulls the latest snapshot and says the new word after an
// advance or restart.
func (s *PracticeScreen) refresh() {
	prev := s.snap
	s.snap = s.coord.Snapshot()
	s.input.SetValue(s.snap.Input)
	s.input.ReadOnly = s.snap.Correct || s.snap.Completed

	if s.snap.Generation != prev.Generation {
		s.spoken = false
	}
	if !s.spoken && !s.snap.Completed {
		s.spoken = true
		s.coord.SpeakTarget()
	}
}
