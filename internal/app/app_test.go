package app

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/jonboulle/clockwork"

	"github.com/abhisek/spellz/internal/practice"
	"github.com/abhisek/spellz/internal/router"
	"github.com/abhisek/spellz/internal/screens/home"
	practicescreen "github.com/abhisek/spellz/internal/screens/practice"
	"github.com/abhisek/spellz/internal/screens/welcome"
	"github.com/abhisek/spellz/internal/speech/mock"
	"github.com/abhisek/spellz/internal/words"
)

func testList() words.List {
	return words.List{Title: "Week 1", Entries: []words.Entry{
		{Word: "because", Hint: "for the reason that"},
		{Word: "friend", Hint: "someone you like"},
	}}
}

func newTestModel(t *testing.T, skipWelcome bool) (AppModel, *practice.Coordinator, *Notifier, *clockwork.FakeClock) {
	t.Helper()
	changes := NewNotifier()
	clk := clockwork.NewFakeClockAt(time.Unix(0, 0))
	coord, err := practice.New(testList().Entries, practice.Options{
		Recognizer:  &mock.Recognizer{},
		Synthesizer: &mock.Synthesizer{},
		Clock:       clk,
		OnChange:    changes.Notify,
	})
	if err != nil {
		t.Fatalf("practice.New: %v", err)
	}
	t.Cleanup(coord.Close)

	m := newAppModel(Options{
		List:        testList(),
		Learner:     "Shelly",
		Coordinator: coord,
		Changes:     changes,
		SkipWelcome: skipWelcome,
	})
	return m, coord, changes, clk
}

// send delivers msg and then every message produced by navigation
// commands, like the Bubble Tea loop would.
func send(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd == nil {
		return m
	}
	switch out := cmd().(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		next, _ = m.Update(out)
		m = next.(AppModel)
	}
	return m
}

func TestNotifier_Coalesces(t *testing.T) {
	n := NewNotifier()
	n.Notify()
	n.Notify()
	n.Notify()

	if _, ok := n.Wait()().(practicescreen.ChangedMsg); !ok {
		t.Fatal("Wait did not return ChangedMsg")
	}
	select {
	case <-n.c:
		t.Error("notifications were not merged")
	default:
	}
}

func TestApp_StartsOnWelcome(t *testing.T) {
	m, _, _, _ := newTestModel(t, false)
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("active = %T, want welcome", m.router.Active())
	}

	m = send(t, m, tea.KeyPressMsg{Code: ' '})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("after key: active = %T, want home", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestApp_PracticeFlow(t *testing.T) {
	m, coord, changes, clk := newTestModel(t, true)

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := m.router.Active().(*practicescreen.PracticeScreen); !ok {
		t.Fatalf("active = %T, want practice", m.router.Active())
	}

	for _, r := range "because" {
		next, _ := m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
		m = next.(AppModel)
	}
	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !coord.Snapshot().Correct {
		t.Fatalf("answer not accepted: %+v", coord.Snapshot().State)
	}

	clk.Advance(practice.DefaultAdvanceDelay)
	deadline := time.Now().Add(2 * time.Second)
	for coord.Snapshot().Position() != 2 {
		if time.Now().After(deadline) {
			t.Fatal("coordinator did not advance")
		}
		time.Sleep(time.Millisecond)
	}
	msg := changes.Wait()()
	m = send(t, m, msg)

	if view := m.router.View(100, 30); !strings.Contains(view, "Word 2 of 2") {
		t.Errorf("view does not show the second word:\n%s", view)
	}
	hints := m.footerHints(m.router.Active())
	if len(hints) == 0 || hints[len(hints)-1].Key != "Ctrl+C" {
		t.Errorf("footer hints = %+v", hints)
	}

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Errorf("Esc did not return home, depth %d", m.router.Depth())
	}
}

func TestApp_EscOnHomeDoesNothing(t *testing.T) {
	m, _, _, _ := newTestModel(t, true)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("Esc at the bottom of the stack returned a command")
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m, _, _, _ := newTestModel(t, true)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("Ctrl+C returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Ctrl+C did not quit")
	}
}
