// Package grading scores a quiz against a user's answers.
//
// Grade is a pure function of its inputs: it never mutates the quiz, never
// fails for a well-formed quiz, and returns identical results for identical
// inputs.
package grading

import (
	"fmt"
	"strings"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
)

// Score thresholds for open-ended answers.
const (
	closeThreshold   = 0.9
	partialThreshold = 0.5
)

// Comments attached to item results.
const (
	CommentCorrect   = "Correct."
	CommentNoAnswer  = "No answer given."
	CommentIncorrect = "Incorrect."
)

// AnswerSet maps question ids to the raw text the user submitted.
type AnswerSet map[int]string

// ItemResult is the outcome for one question.
type ItemResult struct {
	Question  quiz.Question `json:"question"`
	Submitted string        `json:"submitted"`
	Score     float64       `json:"score"`
	MaxScore  float64       `json:"max_score"`
	Comment   string        `json:"comment"`

	// Similarity is set for graded open-ended answers only.
	Similarity *float64 `json:"similarity,omitempty"`
}

// Correct reports whether the item earned full marks.
func (r ItemResult) Correct() bool {
	return r.Score >= r.MaxScore && r.MaxScore > 0
}

// Result is the graded outcome of a whole quiz.
type Result struct {
	Total      float64      `json:"total_score"`
	Max        float64      `json:"max_score"`
	Percentage float64      `json:"percentage"`
	Items      []ItemResult `json:"items"`
}

// Grade scores every question of q in order. A question with no entry in
// answers is graded as unanswered.
func Grade(q *quiz.Quiz, answers AnswerSet) Result {
	res := Result{Items: make([]ItemResult, 0, len(q.Questions))}

	for _, question := range q.Questions {
		item := GradeQuestion(question, answers[question.ID])
		res.Total += item.Score
		res.Max += item.MaxScore
		res.Items = append(res.Items, item)
	}

	if res.Max > 0 {
		res.Percentage = res.Total / res.Max * 100
	}
	return res
}

// GradeQuestion scores a single answer against a question.
func GradeQuestion(q quiz.Question, submitted string) ItemResult {
	submitted = strings.TrimSpace(submitted)
	item := ItemResult{
		Question:  q,
		Submitted: submitted,
		MaxScore:  1.0,
	}

	if submitted == "" {
		item.Comment = CommentNoAnswer
		return item
	}

	switch q.Kind.(type) {
	case quiz.MultipleChoice:
		item.Score, item.Comment = gradeChoice(submitted, q.Answer)
	case quiz.TrueFalse:
		item.Score, item.Comment = gradeTrueFalse(submitted, q.Answer)
	case quiz.OpenEnded:
		sim := Similarity(submitted, q.Answer)
		item.Similarity = &sim
		item.Score, item.Comment = gradeOpen(sim)
	default:
		// A question without a known kind cannot be matched.
		item.Comment = CommentIncorrect
	}
	return item
}

func gradeChoice(submitted, reference string) (float64, string) {
	if normalizeChoice(submitted) == normalizeChoice(reference) {
		return 1.0, CommentCorrect
	}
	return 0, CommentIncorrect
}

func normalizeChoice(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), ".", "")
}

func gradeTrueFalse(submitted, reference string) (float64, string) {
	ref := strings.ToLower(strings.TrimSpace(reference))
	switch strings.ToLower(submitted) {
	case "true", "t":
		if ref == "true" {
			return 1.0, CommentCorrect
		}
	case "false", "f":
		if ref == "false" {
			return 1.0, CommentCorrect
		}
	}
	return 0, CommentIncorrect
}

func gradeOpen(sim float64) (float64, string) {
	switch {
	case sim >= closeThreshold:
		return 1.0, fmt.Sprintf("Very close to model answer (similarity %.2f).", sim)
	case sim >= partialThreshold:
		return 0.5, fmt.Sprintf("Partially correct (similarity %.2f).", sim)
	default:
		return 0, fmt.Sprintf("Not very close to model answer (similarity %.2f).", sim)
	}
}

// Similarity is the fraction of distinct reference tokens that also appear
// in the submitted answer. Tokens are lower-cased and split on whitespace
// and commas. An empty reference yields 0.
func Similarity(submitted, reference string) float64 {
	ref := tokenSet(reference)
	if len(ref) == 0 {
		return 0
	}
	sub := tokenSet(submitted)

	shared := 0
	for tok := range ref {
		if _, ok := sub[tok]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(ref))
}

func tokenSet(s string) map[string]struct{} {
	s = strings.ReplaceAll(strings.ToLower(s), ",", " ")
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}
