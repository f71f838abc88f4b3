// Package welcome shows the greeting splash before the home screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellz/internal/router"
	"github.com/abhisek/spellz/internal/screen"
	"github.com/abhisek/spellz/internal/ui/components"
	"github.com/abhisek/spellz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 500 * time.Millisecond
	greetAt      = 1200 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

var sparkles = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen greets the learner. Any key moves on to the screen built
// by next; after the animation a key is still required.
type WelcomeScreen struct {
	learner      string
	next         func() screen.Screen
	elapsed      time.Duration
	ticks        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(learner string, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{learner: learner, next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.ticks++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	bee := components.RenderMascot(components.MoodIdle)
	if w.elapsed >= bannerAt {
		s := sparkles[w.ticks%len(sparkles)]
		lines := strings.Split(bee, "\n")
		lines[0] = theme.Notice.Render(s) + " " + lines[0]
		bee = strings.Join(lines, "\n")
	}

	sections := []string{bee}
	if w.elapsed >= bannerAt {
		sections = append(sections, "", RenderBanner(width))
	}
	if w.elapsed >= greetAt {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(Greeting(w.learner)),
			theme.Body.Render("Let's practice spelling!"),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
