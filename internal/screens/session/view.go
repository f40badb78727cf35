package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
	sess "github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/session"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/theme"
)

const maxTextWidth = 76

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return s.renderError(width)
	case s.state.Phase == sess.PhaseGenerating:
		return s.renderGenerating(width)
	case s.finished:
		return centered(width, theme.Hint).Render("\n\n  Grading your quiz...")
	}
	return s.renderQuestionView(width)
}

func centered(width int, style lipgloss.Style) lipgloss.Style {
	return style.Width(width).Align(lipgloss.Center)
}

func (s *SessionScreen) renderError(width int) string {
	return centered(width, theme.Incorrect).Render("\n\n"+s.errMsg) + "\n\n" +
		centered(width, theme.Hint).Render("Press any key to go back.")
}

func (s *SessionScreen) renderGenerating(width int) string {
	msg := "Generating Random Quiz from local materials..."
	if s.state.Mode == sess.ModeTopic {
		msg = fmt.Sprintf("Generating Topic Quiz on %q...", s.state.Topic)
	}
	return centered(width, lipgloss.NewStyle().Foreground(theme.TextDim)).Render("\n\n  " + msg)
}

// renderQuestionView renders the active question, or the last answered one
// while feedback is shown.
func (s *SessionScreen) renderQuestionView(width int) string {
	var q quiz.Question
	if s.feedback != nil {
		q = s.feedback.Question
	} else {
		current, ok := s.state.Current()
		if !ok {
			return ""
		}
		q = current
	}

	textWidth := min(width-8, maxTextWidth)
	var b strings.Builder

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Question %d (%s)", q.ID, strings.ToUpper(q.KindName())))
	b.WriteString(info)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if s.notice != "" && q.ID == s.state.Quiz.Questions[0].ID {
		b.WriteString(centered(width, theme.Hint).Render(s.notice))
		b.WriteString("\n\n")
	}

	question := lipgloss.NewStyle().Width(textWidth).Foreground(theme.Text).Bold(true).Render(q.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, question))
	b.WriteString("\n\n")

	var input string
	if s.mcActive {
		input = s.mc.View()
	} else {
		input = "Answer: " + s.input.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(textWidth).Render(input)))

	if s.feedback != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderFeedback(textWidth)))
	}

	return b.String()
}

// renderFeedback renders the grade of the question just answered.
func (s *SessionScreen) renderFeedback(width int) string {
	item := s.feedback
	q := item.Question

	var b strings.Builder
	b.WriteString(theme.ScoreStyle(item.Score, item.MaxScore).
		Render(fmt.Sprintf("%s  %s", item.Comment, sess.FormatScore(item.Score, item.MaxScore))))
	b.WriteString("\n\n")

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
	b.WriteString(body.Render(dim.Render("Your answer: ") + sess.DisplayAnswer(item.Submitted)))
	b.WriteString("\n")
	b.WriteString(body.Render(dim.Render("Correct answer: ") + q.Answer))
	b.WriteString("\n\n")
	b.WriteString(body.Render(sess.DisplayExplanation(q)))

	if len(q.Citations) > 0 {
		b.WriteString("\n\n")
		b.WriteString(dim.Render("Sources:"))
		for _, c := range q.Citations {
			b.WriteString("\n")
			b.WriteString(theme.Citation.Render("  " + c))
		}
	}
	return b.String()
}
