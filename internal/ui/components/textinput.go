package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// AnswerInput wraps bubbles/textinput for typing a single word.
type AnswerInput struct {
	Model    textinput.Model
	ReadOnly bool
}

// NewAnswerInput creates a focused input limited to charLimit runes.
func NewAnswerInput(placeholder string, charLimit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update forwards msg to the text input unless it is read-only. changed
// reports whether the value was edited.
func (a AnswerInput) Update(msg tea.Msg) (next AnswerInput, cmd tea.Cmd, changed bool) {
	if a.ReadOnly {
		return a, nil, false
	}
	before := a.Model.Value()
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd, a.Model.Value() != before
}

func (a AnswerInput) View() string {
	return a.Model.View()
}

func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// SetValue replaces the text, e.g. with a transcribed answer.
func (a *AnswerInput) SetValue(v string) {
	if a.Model.Value() == v {
		return
	}
	a.Model.SetValue(v)
	a.Model.CursorEnd()
}
