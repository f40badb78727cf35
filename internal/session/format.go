package session

import (
	"fmt"
	"strings"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/grading"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
)

const (
	noAnswerText        = "(no answer given)"
	fallbackExplanation = "See the cited local slides for explanation."
)

// FormatQuestion renders a question for a text front-end.
func FormatQuestion(q quiz.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Q%d (%s): %s", q.ID, strings.ToUpper(q.KindName()), q.Text)

	switch k := q.Kind.(type) {
	case quiz.MultipleChoice:
		for _, opt := range k.Options {
			fmt.Fprintf(&b, "\n  %s", opt)
		}
	case quiz.TrueFalse:
		b.WriteString("\n  (Answer with True or False)")
	}
	return b.String()
}

// DisplayAnswer returns the submitted answer, or a placeholder when empty.
func DisplayAnswer(submitted string) string {
	if submitted == "" {
		return noAnswerText
	}
	return submitted
}

// DisplayExplanation returns the explanation, or a pointer to the sources
// when the model gave none.
func DisplayExplanation(q quiz.Question) string {
	if exp := strings.TrimSpace(q.Explanation); exp != "" {
		return exp
	}
	return fallbackExplanation
}

// FormatScore renders a score pair such as "0.5/1".
func FormatScore(score, max float64) string {
	return fmt.Sprintf("%g/%g", score, max)
}

// FormatSummary renders the aggregate score line.
func FormatSummary(res grading.Result) string {
	return fmt.Sprintf("Score: %.2f / %.2f\nPercentage: %.1f%%", res.Total, res.Max, res.Percentage)
}

// FormatFeedback renders the graded outcome of one question.
func FormatFeedback(item grading.ItemResult) string {
	q := item.Question
	var b strings.Builder
	fmt.Fprintf(&b, "Q%d: %s\n", q.ID, q.Text)
	fmt.Fprintf(&b, "Your answer: %s\n", DisplayAnswer(item.Submitted))
	fmt.Fprintf(&b, "Score: %s\n", FormatScore(item.Score, item.MaxScore))
	fmt.Fprintf(&b, "Comment: %s\n", item.Comment)
	fmt.Fprintf(&b, "Correct answer: %s\n", q.Answer)
	fmt.Fprintf(&b, "Explanation: %s", DisplayExplanation(q))
	if len(q.Citations) > 0 {
		b.WriteString("\nSources (local course material):")
		for _, c := range q.Citations {
			fmt.Fprintf(&b, "\n  - %s", c)
		}
	}
	return b.String()
}

// MixNotice describes how the generated question mix differs from the
// request, or returns "" when it matches.
func MixNotice(q *quiz.Quiz) string {
	if q == nil || !q.CountMismatch() {
		return ""
	}
	return fmt.Sprintf("Note: the model returned %s (requested %s).", q.Produced(), q.Requested)
}
