package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/grading"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/router"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screen"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/session"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/store"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/layout"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Err      error
}

// HistoryScreen lists past quiz attempts. Enter expands an attempt into
// its per-question results.
type HistoryScreen struct {
	attempts store.AttemptRepo
	records  []store.AttemptRecord
	results  map[int]*grading.Result
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(attempts store.AttemptRepo) *HistoryScreen {
	return &HistoryScreen{
		attempts: attempts,
		results:  make(map[int]*grading.Result),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.attempts
	return func() tea.Msg {
		recs, err := repo.List(context.Background(), store.QueryOpts{Limit: historyLimit})
		return historyLoadedMsg{Attempts: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

// result decodes the stored grading result of record i once.
func (s *HistoryScreen) result(i int) *grading.Result {
	if res, ok := s.results[i]; ok {
		return res
	}
	var res grading.Result
	if err := json.Unmarshal(s.records[i].ResultJSON, &res); err != nil {
		s.results[i] = nil
		return nil
	}
	s.results[i] = &res
	return &res
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Take one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		topic := rec.Topic
		if topic == "" {
			topic = "(random)"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-20s  %d questions  %.2f/%.2f  %.1f%%",
			prefix, rec.Timestamp.Local().Format("Jan 02, 2006 15:04"), truncate(topic, 20),
			rec.QuestionCount, rec.TotalScore, rec.MaxScore, rec.Percentage)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetails(i, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderDetails(i, width int) string {
	res := s.result(i)
	if res == nil {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("    Result details unavailable")) + "\n"
	}

	var b strings.Builder
	for _, item := range res.Items {
		line := fmt.Sprintf("    Q%d %-5s %-6s %s", item.Question.ID,
			strings.ToUpper(item.Question.KindName()),
			session.FormatScore(item.Score, item.MaxScore), item.Comment)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.ScoreStyle(item.Score, item.MaxScore).Render(line)))
		b.WriteString("\n")
	}
	if path := s.records[i].ReportPath; path != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("    Report: "+path)))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
