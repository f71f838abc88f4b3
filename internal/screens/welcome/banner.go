package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellz/internal/ui/theme"
)

const bannerArt = `
 ███████╗██████╗ ███████╗██╗     ██╗     ███████╗
 ██╔════╝██╔══██╗██╔════╝██║     ██║     ╚══███╔╝
 ███████╗██████╔╝█████╗  ██║     ██║       ███╔╝
 ╚════██║██╔═══╝ ██╔══╝  ██║     ██║      ███╔╝
 ███████║██║     ███████╗███████╗███████╗███████╗
 ╚══════╝╚═╝     ╚══════╝╚══════╝╚══════╝╚══════╝`

const bannerCompact = "S P E L L Z"

// RenderBanner returns the block-letter banner, or a compact one for
// terminals narrower than 52 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

// Greeting returns "Hi <name>!" or a plain hello.
func Greeting(name string) string {
	if name == "" {
		return "Hi there!"
	}
	return "Hi " + name + "!"
}
