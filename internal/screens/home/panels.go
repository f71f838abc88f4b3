package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellz/internal/ui/theme"
)

// contentWidth returns the shared inner width of every panel.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

func renderListPanel(title string, count int, cw int, compact bool) string {
	countStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var text string
	if compact {
		text = countStyle.Render(fmt.Sprintf("%d words", count))
	} else {
		text = titleStyle.Render(title) + "  " + countStyle.Render(fmt.Sprintf("%d words", count))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

const buttonWidth = 22

func renderMenu(labels []string, selected int, cw int, compact bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	rows := make([]string, len(labels))
	for i, label := range labels {
		switch {
		case compact && i == selected:
			rows[i] = theme.Selected.Render("▸ " + label)
		case compact:
			rows[i] = theme.Unselected.Render("  " + label)
		case i == selected:
			rows[i] = selectedBtn.Render("▸ " + label)
		default:
			rows[i] = normalBtn.Render(label)
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}

func renderUpdateNote(latest string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("New version %s available (spellz update)", latest))
}

// renderFrame wraps content in a double border filling the content area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
