// Package router keeps the stack of screens and routes messages to the
// one on top.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spellz/internal/screen"
)

// PushScreenMsg opens a screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the previous screen.
type PopScreenMsg struct{}

// PopToRootMsg returns to the bottom screen.
type PopToRootMsg struct{}

// ReplaceScreenMsg swaps the active screen, e.g. after the greeting.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router manages a stack of screens. Screens that implement
// screen.Leaver are told when they are removed.
type Router struct {
	stack []screen.Screen
}

func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push adds s on top of the stack and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. The bottom screen is never removed.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return leave(top)
}

// PopToRoot removes every screen above the bottom one.
func (r *Router) PopToRoot() tea.Cmd {
	var cmds []tea.Cmd
	for len(r.stack) > 1 {
		cmds = append(cmds, r.Pop())
	}
	return tea.Batch(cmds...)
}

// Replace swaps the top screen for s.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		r.stack = []screen.Screen{s}
		return s.Init()
	}
	old := r.stack[len(r.stack)-1]
	r.stack[len(r.stack)-1] = s
	return tea.Batch(leave(old), s.Init())
}

func leave(s screen.Screen) tea.Cmd {
	if l, ok := s.(screen.Leaver); ok {
		return l.Leave()
	}
	return nil
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
