package app

import (
	tea "charm.land/bubbletea/v2"

	practicescreen "github.com/abhisek/spellz/internal/screens/practice"
)

// Notifier carries coordinator change notifications into the Bubble Tea
// loop. Notifications that arrive while one is already queued are merged.
type Notifier struct {
	c chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{c: make(chan struct{}, 1)}
}

// Notify never blocks. Pass it as practice.Options.OnChange.
func (n *Notifier) Notify() {
	select {
	case n.c <- struct{}{}:
	default:
	}
}

// Wait returns a command that delivers the next notification as a
// practicescreen.ChangedMsg.
func (n *Notifier) Wait() tea.Cmd {
	return func() tea.Msg {
		<-n.c
		return practicescreen.ChangedMsg{}
	}
}
