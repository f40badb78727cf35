package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/router"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screen"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screens/history"
	sessionscreen "github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screens/session"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screens/topic"
	sess "github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/session"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/store"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/components"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/layout"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/theme"
)

// Deps are the services the home screen hands to the screens it opens.
// Attempts and Chunks may be nil.
type Deps struct {
	Source     quiz.Source
	Counts     quiz.Counts
	Attempts   store.AttemptRepo
	Chunks     store.ChunkRepo
	OnComplete sess.CompleteFunc
}

type statsLoadedMsg struct {
	Attempts  int
	LastScore *float64
	Passages  int
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps  Deps
	menu  components.Menu
	stats *statsLoadedMsg
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	items := []components.MenuItem{
		{Label: "Random Quiz", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: sessionscreen.New(deps.Source, deps.Counts, "", deps.OnComplete),
				}
			}
		}},
		{Label: "Topic Quiz", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: topic.New(h.startTopic)}
			}
		}},
		{Label: "History", Disabled: deps.Attempts == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Attempts)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) startTopic(t string) screen.Screen {
	return sessionscreen.New(h.deps.Source, h.deps.Counts, t, h.deps.OnComplete)
}

func (h *HomeScreen) Init() tea.Cmd {
	attempts, chunks := h.deps.Attempts, h.deps.Chunks
	return func() tea.Msg {
		ctx := context.Background()
		var msg statsLoadedMsg
		if attempts != nil {
			recs, err := attempts.List(ctx, store.QueryOpts{})
			if err == nil {
				msg.Attempts = len(recs)
				if len(recs) > 0 {
					pct := recs[0].Percentage
					msg.LastScore = &pct
				}
			}
		}
		if chunks != nil {
			if n, err := chunks.Count(ctx); err == nil {
				msg.Passages = n
			}
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if stats, ok := msg.(statsLoadedMsg); ok {
		h.stats = &stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	counts := h.deps.Counts

	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("Network Security Quiz"))
	sections = append(sections, theme.Subtitle.Width(width).Render(fmt.Sprintf(
		"Each quiz has %d questions: %d multiple-choice, %d true/false, %d open-ended",
		counts.Total(), counts.MCQ, counts.TF, counts.Open)))

	if h.stats != nil {
		sections = append(sections, h.renderStats(width))
	}

	menu := theme.Card.Render(h.menu.View())
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	return "\n" + strings.Join(sections, "\n\n")
}

func (h *HomeScreen) renderStats(width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	last := "-"
	if h.stats.LastScore != nil {
		last = fmt.Sprintf("%.1f%%", *h.stats.LastScore)
	}

	line := dim.Render("Quizzes taken ") + val.Render(fmt.Sprint(h.stats.Attempts)) +
		dim.Render("   Last score ") + val.Render(last) +
		dim.Render("   Passages indexed ") + val.Render(fmt.Sprint(h.stats.Passages))

	out := lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	if h.deps.Chunks != nil && h.stats.Passages == 0 {
		out += "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No course material indexed yet. Run `netsec-quiz ingest <dir>` first."))
	}
	return out
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-4", Description: "Pick"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
