package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellz/internal/ui/theme"
)

// ProgressBar shows how far through the word list the learner is.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{Label: label, Done: done, Total: total, Width: width}
}

// Fraction returns Done/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

func (p ProgressBar) View() string {
	var label string
	if p.Label != "" {
		label = theme.Body.Render(p.Label) + "  "
	}
	count := theme.Hint.Render(fmt.Sprintf("  %d/%d", p.Done, p.Total))

	barWidth := max(p.Width-lipgloss.Width(label)-lipgloss.Width(count), 4)
	filled := int(float64(barWidth) * p.Fraction())

	return label +
		lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		count
}
