package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/grading"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/router"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screen"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/session"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/components"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/layout"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/theme"
)

// SummaryScreen displays the graded quiz.
type SummaryScreen struct {
	quiz     *quiz.Quiz
	result   grading.Result
	note     string
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. note is an optional status line, such as
// where the report was written.
func New(q *quiz.Quiz, result grading.Result, note string) *SummaryScreen {
	return &SummaryScreen{
		quiz:     q,
		result:   result,
		note:     note,
		expanded: make(map[int]bool),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc", "q":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.result.Items)-1 {
			s.selected++
		}
	case "enter", "space":
		s.expanded[s.selected] = !s.expanded[s.selected]
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	textWidth := min(width-8, 76)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	if s.quiz != nil && s.quiz.Topic != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.TextDim).Render("Topic: " + s.quiz.Topic))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Score: %.2f / %.2f", res.Total, res.Max)))
	b.WriteString("\n")

	bar := components.NewProgressBar("", res.Percentage/100, true, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(textWidth, 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Questions")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	var rows strings.Builder
	for i, item := range res.Items {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%sQ%d %-5s %-6s %s", prefix, item.Question.ID,
			strings.ToUpper(item.Question.KindName()),
			session.FormatScore(item.Score, item.MaxScore), item.Comment)
		rows.WriteString(theme.ScoreStyle(item.Score, item.MaxScore).Render(line))
		rows.WriteString("\n")

		if s.expanded[i] {
			detail := lipgloss.NewStyle().
				Foreground(theme.Text).
				Width(textWidth).
				PaddingLeft(4).
				Render(session.FormatFeedback(item))
			rows.WriteString(detail)
			rows.WriteString("\n")
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(textWidth).Render(rows.String())))

	if s.note != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.Secondary).Render(s.note))
	}

	return b.String()
}
