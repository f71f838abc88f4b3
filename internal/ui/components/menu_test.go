package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func testMenu(ran *string) Menu {
	item := func(label string, disabled bool) MenuItem {
		return MenuItem{Label: label, Disabled: disabled, Action: func() tea.Cmd {
			*ran = label
			return nil
		}}
	}
	return NewMenu([]MenuItem{
		item("start", true),
		item("list", false),
		item("exit", false),
	})
}

func TestMenu_SkipsDisabledAndWraps(t *testing.T) {
	var ran string
	m := testMenu(&ran)
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want 1", m.Selected)
	}

	steps := []struct {
		key  tea.KeyPressMsg
		want int
	}{
		{tea.KeyPressMsg{Code: tea.KeyDown}, 2},
		{tea.KeyPressMsg{Code: tea.KeyDown}, 1},
		{tea.KeyPressMsg{Code: tea.KeyUp}, 2},
		{tea.KeyPressMsg{Code: 'k', Text: "k"}, 1},
	}
	for i, s := range steps {
		m, _ = m.Update(s.key)
		if m.Selected != s.want {
			t.Errorf("step %d: selected = %d, want %d", i, m.Selected, s.want)
		}
	}
}

func TestMenu_EnterRunsSelected(t *testing.T) {
	var ran string
	m := testMenu(&ran)
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran != "list" {
		t.Errorf("ran %q, want list", ran)
	}
}

func TestMenu_DigitShortcut(t *testing.T) {
	var ran string
	m := testMenu(&ran)

	m, _ = m.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	if ran != "" || m.Selected != 1 {
		t.Errorf("disabled shortcut ran %q, selected %d", ran, m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if ran != "exit" || m.Selected != 2 {
		t.Errorf("ran %q, selected %d; want exit, 2", ran, m.Selected)
	}

	m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if ran != "exit" {
		t.Errorf("out of range shortcut ran %q", ran)
	}
}

func TestMenu_AllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a", Disabled: true}})
	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != -1 || cmd != nil {
		t.Errorf("selected = %d, cmd = %v", m.Selected, cmd)
	}
	if m.View() == "" {
		t.Error("empty view")
	}
}
