// Package home is the main menu.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellz/internal/router"
	"github.com/abhisek/spellz/internal/screen"
	"github.com/abhisek/spellz/internal/screens/welcome"
	"github.com/abhisek/spellz/internal/screens/wordlist"
	"github.com/abhisek/spellz/internal/ui/components"
	"github.com/abhisek/spellz/internal/ui/theme"
	"github.com/abhisek/spellz/internal/words"
)

// Options configures the home screen.
type Options struct {
	List    words.List
	Learner string

	// Practice builds the practice screen each time it is opened.
	Practice func() screen.Screen

	// LatestVersion, when set, is announced below the menu.
	LatestVersion string
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	opts   Options
	menu   components.Menu
	labels []string
}

var _ screen.Screen = (*HomeScreen)(nil)

func New(opts Options) *HomeScreen {
	labels := []string{"START PRACTICE", "WORD LIST", "EXIT"}
	items := []components.MenuItem{
		{Label: labels[0], Disabled: opts.Practice == nil, Action: func() tea.Cmd {
			next := opts.Practice()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: labels[1], Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: wordlist.New(opts.List)} }
		}},
		{Label: labels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return &HomeScreen{
		opts:   opts,
		menu:   components.NewMenu(items),
		labels: labels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height excludes header and footer.
	compact := height < 22 || width < 80
	cw := contentWidth(width)

	var sections []string
	if compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(theme.Title.Render(welcome.Greeting(h.opts.Learner))))
	} else {
		sections = append(sections,
			lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(welcome.RenderBanner(width)),
			lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
				Render(components.RenderMascot(components.MoodIdle)+"   "+theme.Title.Render(welcome.Greeting(h.opts.Learner))),
		)
	}

	title := h.opts.List.Title
	if title == "" {
		title = "This week's words"
	}
	sections = append(sections,
		renderListPanel(title, h.opts.List.Len(), cw, compact),
		renderMenu(h.labels, h.menu.Selected, cw, compact),
	)
	if h.opts.LatestVersion != "" {
		sections = append(sections, renderUpdateNote(h.opts.LatestVersion, cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return renderFrame(strings.Join(sections, sep), width, height)
}
