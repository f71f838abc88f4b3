// Package screen defines what the router needs from a screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spellz/internal/ui/layout"
)

// Screen is one full-window view of the application.
type Screen interface {
	// Init returns an initial command when the screen is shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is implemented by screens that hold resources while visible,
// such as an open microphone. Leave is called when the router removes
// the screen.
type Leaver interface {
	Leave() tea.Cmd
}
