package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spellz/internal/ui/theme"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. Up and down wrap around and skip
// disabled items; the digits 1-9 jump straight to an item and run it.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	return m
}

// move steps the selection by dir until it lands on an enabled item.
// With nothing enabled the selection stays put.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) activate() tea.Cmd {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	item := m.Items[m.Selected]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch s := key.String(); s {
	case "up", "k", "shift+tab":
		m.move(-1)
	case "down", "j", "tab":
		m.move(1)
	case "enter", "space":
		return m, m.activate()
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > len(m.Items) || m.Items[n-1].Disabled {
			return m, nil
		}
		m.Selected = n - 1
		return m, m.activate()
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch {
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("▸ " + item.Label))
		case item.Disabled:
			b.WriteString(theme.Hint.Render("  " + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("  " + item.Label))
		}
	}
	return b.String()
}
