// Package app is the root Bubble Tea model.
package app

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellz/internal/practice"
	"github.com/abhisek/spellz/internal/router"
	"github.com/abhisek/spellz/internal/screen"
	"github.com/abhisek/spellz/internal/screens/home"
	practicescreen "github.com/abhisek/spellz/internal/screens/practice"
	"github.com/abhisek/spellz/internal/screens/welcome"
	"github.com/abhisek/spellz/internal/ui/layout"
	"github.com/abhisek/spellz/internal/words"
)

// Options holds the dependencies of the application.
type Options struct {
	List    words.List
	Learner string

	// Coordinator runs the practice session. Its OnChange must call
	// Changes.Notify.
	Coordinator *practice.Coordinator
	Changes     *Notifier

	LatestVersion string
	Logger        *slog.Logger

	// SkipWelcome starts on the home screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	changes *Notifier
	learner string
	log     *slog.Logger
	width   int
	height  int
}

func newAppModel(opts Options) AppModel {
	if opts.Changes == nil {
		opts.Changes = NewNotifier()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	homeOpts := home.Options{
		List:          opts.List,
		Learner:       opts.Learner,
		LatestVersion: opts.LatestVersion,
	}
	if coord := opts.Coordinator; coord != nil {
		homeOpts.Practice = func() screen.Screen {
			if coord.Snapshot().Completed {
				coord.Reset()
			}
			return practicescreen.New(coord, opts.Learner)
		}
	}
	homeScreen := func() screen.Screen { return home.New(homeOpts) }

	var first screen.Screen
	if opts.SkipWelcome {
		first = homeScreen()
	} else {
		first = welcome.New(opts.Learner, homeScreen)
	}

	return AppModel{
		router:  router.New(first),
		changes: opts.Changes,
		learner: opts.Learner,
		log:     logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.changes.Wait())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case practicescreen.ChangedMsg:
		return m, tea.Batch(m.router.Update(msg), m.changes.Wait())

	case router.PushScreenMsg:
		m.log.Debug("screen push", "screen", msg.Screen.Title())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}
	header := layout.RenderHeader(title, m.learner, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
