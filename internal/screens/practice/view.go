package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	prac "github.com/abhisek/spellz/internal/practice"
	"github.com/abhisek/spellz/internal/ui/components"
	"github.com/abhisek/spellz/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	cardWidth := min(max(width-8, 40), 72)

	var b strings.Builder
	b.WriteString(components.RenderMascot(s.mood()))
	b.WriteString("\n\n")

	done := s.snap.WordIndex
	if s.snap.Completed {
		done = s.snap.Total
	}
	label := fmt.Sprintf("Word %d of %d", s.snap.Position(), s.snap.Total)
	b.WriteString(components.NewProgressBar(label, done, s.snap.Total, cardWidth).View())
	b.WriteString("\n\n")

	if !s.snap.Completed {
		if hint := s.snap.Entry.Hint; hint != "" {
			b.WriteString(theme.Hint.Render("Hint: " + hint))
			b.WriteString("\n\n")
		}
		b.WriteString(theme.Card.Width(cardWidth).Render(s.input.View()))
		b.WriteString("\n")
		b.WriteString(s.buttons())
		b.WriteString("\n\n")
	}

	b.WriteString(s.feedbackLine())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(cardWidth).Render(b.String()))
}

func (s *PracticeScreen) buttons() string {
	btns := []string{
		components.NewButton("Check", "Enter", s.snap.Input != "" && !s.snap.Correct).View(),
		components.NewButton("Hear word", "Ctrl+S", false).View(),
		components.NewButton(listenLabel(s.snap.Listening), "Ctrl+L", s.snap.Listening).View(),
	}
	if s.snap.Input != "" && !s.snap.Correct {
		btns = append(btns, components.NewButton("Clear", "Ctrl+U", false).View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, btns...)
}

func listenLabel(listening bool) string {
	if listening {
		return "Stop"
	}
	return "Speak"
}

func (s *PracticeScreen) feedbackLine() string {
	switch s.snap.Feedback {
	case prac.FeedbackListening:
		return theme.Listen.Render("● Listening... say the word")
	case prac.FeedbackCorrect:
		typed, _ := prac.Affirmations(s.learner)
		return theme.Correct.Render("✓ Correct! " + typed)
	case prac.FeedbackRetry:
		return theme.Retry.Render("✗ Not quite. Listen again and try once more.")
	case prac.FeedbackUnsupported:
		return theme.Notice.Render("Speaking isn't available here. Please type your answer.")
	case prac.FeedbackCompleted:
		return theme.Done.Render(fmt.Sprintf("★ All done! You spelled all %d words.", s.snap.Total)) +
			"\n\n" + theme.Hint.Render("Enter to go home, Ctrl+R to practise again")
	default:
		return theme.Hint.Render("Type the word you hear, or press Ctrl+L and say it.")
	}
}

func (s *PracticeScreen) mood() components.Mood {
	switch s.snap.Feedback {
	case prac.FeedbackListening:
		return components.MoodListening
	case prac.FeedbackCorrect, prac.FeedbackCompleted:
		return components.MoodHappy
	case prac.FeedbackRetry:
		return components.MoodOops
	default:
		return components.MoodIdle
	}
}
