package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/grading"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/router"
)

func testQuiz() (*quiz.Quiz, grading.Result) {
	q := &quiz.Quiz{
		Topic: "TLS",
		Questions: []quiz.Question{
			{ID: 1, Kind: quiz.TrueFalse{}, Text: "TLS runs over TCP.", Answer: "True", Explanation: "TLS needs a reliable transport."},
			{ID: 2, Kind: quiz.OpenEnded{}, Text: "What does a certificate bind?", Answer: "public key identity", Citations: []string{"slides.md (p.3)"}},
		},
	}
	return q, grading.Grade(q, grading.AnswerSet{1: "True", 2: "identity"})
}

func TestSummaryScreen_Title(t *testing.T) {
	q, res := testQuiz()
	s := New(q, res, "")
	if s.Title() != "Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	q, res := testQuiz()
	s := New(q, res, "Report saved to reports/quiz_report.html")
	view := s.View(100, 30)

	for _, want := range []string{"Topic: TLS", "Score: 1.00 / 2.00", "Q1", "Q2", "reports/quiz_report.html"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Correct answer:") {
		t.Error("details should be collapsed initially")
	}
}

func TestSummaryScreen_ExpandDetails(t *testing.T) {
	q, res := testQuiz()
	s := New(q, res, "")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	view := s.View(100, 40)
	if !strings.Contains(view, "Correct answer: public key identity") {
		t.Errorf("expected expanded feedback for Q2, got:\n%s", view)
	}
	if !strings.Contains(view, "slides.md (p.3)") {
		t.Error("expected citation in expanded feedback")
	}
}

func TestSummaryScreen_SelectionClamped(t *testing.T) {
	q, res := testQuiz()
	s := New(q, res, "")
	for i := 0; i < 5; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	q, res := testQuiz()
	s := New(q, res, "")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("expected PopToRootMsg, got %T", cmd())
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	q, res := testQuiz()
	s := New(q, res, "")
	if len(s.KeyHints()) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(s.KeyHints()))
	}
}
