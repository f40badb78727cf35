package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/router"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screen"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	lockEnd      = 400 * time.Millisecond
	bannerEnd    = 1200 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

const lockArt = `    ╭─────╮
    │     │
  ╭─┴─────┴─╮
  │    ◉    │
  │    ┃    │
  ╰─────────╯`

// blink frames for the keyhole while the lock is shown
var blinkFrames = []string{"◉", "○"}

type tickMsg time.Time

// WelcomeScreen shows a short splash before handing over to the home
// screen. Any key skips it.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	tagline      string
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced
// by homeFactory. tagline is shown under the banner.
func New(homeFactory func() screen.Screen, tagline string) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
		tagline:     tagline,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.tickCount++
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
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
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	art := lockArt
	if w.elapsed < lockEnd {
		art = strings.Replace(art, "◉", blinkFrames[w.tickCount%len(blinkFrames)], 1)
	}

	sections := []string{lipgloss.NewStyle().Foreground(theme.Secondary).Render(art)}

	if w.elapsed >= lockEnd {
		sections = append(sections, "", RenderBanner(width))
	}

	if w.elapsed >= bannerEnd {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.tagline),
			"",
			theme.Hint.Render("press any key to continue"))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
