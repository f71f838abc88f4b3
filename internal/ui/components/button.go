package components

import (
	"github.com/abhisek/spellz/internal/ui/theme"
)

// Button renders a labelled action with its shortcut.
type Button struct {
	Label  string
	Key    string
	Active bool
}

func NewButton(label, key string, active bool) Button {
	return Button{Label: label, Key: key, Active: active}
}

func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label += " (" + b.Key + ")"
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
