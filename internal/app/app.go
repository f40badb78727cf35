package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/router"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screen"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screens/home"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screens/welcome"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/layout"
)

const tagline = "Test yourself on your own course material"

// Options configures the interactive quiz app.
type Options struct {
	home.Deps

	// SkipWelcome starts directly on the home screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome splash.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen { return home.New(opts.Deps) }

	var first screen.Screen
	if opts.SkipWelcome {
		first = homeFactory()
	} else {
		first = welcome.New(homeFactory, tagline)
	}
	return AppModel{
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current window size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var answered, total int
	if active != nil {
		title = active.Title()
		if pp, ok := active.(screen.ProgressProvider); ok {
			answered, total = pp.Progress()
		}
	}

	header := layout.RenderHeader(title, answered, total, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if khp, ok := active.(screen.KeyHintProvider); ok {
		return khp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
