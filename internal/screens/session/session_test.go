package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/router"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screens/summary"
	sess "github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/session"
)

// fakeSource implements quiz.Source for testing.
type fakeSource struct {
	quiz   *quiz.Quiz
	err    error
	topics []string
	random int
}

func (f *fakeSource) GenerateRandom(_ context.Context, _ quiz.Counts) (*quiz.Quiz, error) {
	f.random++
	return f.quiz, f.err
}

func (f *fakeSource) GenerateTopic(_ context.Context, topic string, _ quiz.Counts) (*quiz.Quiz, error) {
	f.topics = append(f.topics, topic)
	return f.quiz, f.err
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		ID:        "q1",
		Requested: quiz.Counts{MCQ: 1, TF: 1, Open: 1},
		Questions: []quiz.Question{
			{
				ID:          1,
				Kind:        quiz.MultipleChoice{Options: []string{"A. HTTP", "B. TLS", "C. FTP", "D. Telnet"}},
				Text:        "Which protocol encrypts web traffic?",
				Answer:      "B",
				Explanation: "TLS provides confidentiality for HTTP.",
				Citations:   []string{"tls.md (p.2)"},
			},
			{ID: 2, Kind: quiz.TrueFalse{}, Text: "A stateful firewall tracks connections.", Answer: "True"},
			{ID: 3, Kind: quiz.OpenEnded{}, Text: "What does a VPN create?", Answer: "encrypted tunnel"},
		},
	}
}

// start runs generation and feeds the result back into the screen.
func start(t *testing.T, s *SessionScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected generation command from Init")
	}
	s.Update(cmd())
}

func typeText(s *SessionScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func TestSessionScreen_RandomQuiz(t *testing.T) {
	src := &fakeSource{quiz: testQuiz()}
	s := New(src, quiz.DefaultCounts(), "", nil)

	if s.Title() != "Random Quiz" {
		t.Errorf("Title = %q", s.Title())
	}
	if !strings.Contains(s.View(100, 30), "Generating Random Quiz") {
		t.Error("expected generating message before the quiz arrives")
	}

	start(t, s)
	if src.random != 1 {
		t.Errorf("GenerateRandom calls = %d, want 1", src.random)
	}
	if s.state.Phase != sess.PhaseAsking {
		t.Fatalf("phase = %v, want asking", s.state.Phase)
	}
	if !s.mcActive {
		t.Fatal("expected multiple choice input for an mcq question")
	}
	answered, total := s.Progress()
	if answered != 0 || total != 3 {
		t.Errorf("Progress = %d/%d, want 0/3", answered, total)
	}
}

func TestSessionScreen_TopicQuiz(t *testing.T) {
	src := &fakeSource{quiz: testQuiz()}
	s := New(src, quiz.DefaultCounts(), "VPN", nil)
	if s.Title() != "Topic Quiz: VPN" {
		t.Errorf("Title = %q", s.Title())
	}
	if !strings.Contains(s.View(100, 30), `Generating Topic Quiz on "VPN"`) {
		t.Error("expected topic generating message")
	}
	start(t, s)
	if len(src.topics) != 1 || src.topics[0] != "VPN" {
		t.Errorf("topics = %v, want [VPN]", src.topics)
	}
}

func TestSessionScreen_FullRun(t *testing.T) {
	var completed *sess.State
	hook := func(_ context.Context, st *sess.State) (string, error) {
		completed = st
		return "Report saved to reports/x.html", nil
	}
	s := New(&fakeSource{quiz: testQuiz()}, quiz.DefaultCounts(), "", hook)
	start(t, s)

	// Q1: pick B with the number key.
	s.Update(keyPress('2'))
	s.Update(specialKey(tea.KeyEnter))
	if s.feedback == nil {
		t.Fatal("expected feedback after answering")
	}
	if !s.feedback.Correct() {
		t.Errorf("Q1 feedback = %+v, want correct", s.feedback)
	}
	view := s.View(100, 40)
	for _, want := range []string{"Correct.", "TLS provides confidentiality", "tls.md (p.2)"} {
		if !strings.Contains(view, want) {
			t.Errorf("feedback view missing %q", want)
		}
	}

	// Q2: choose False, which is wrong.
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))
	if s.feedback == nil || s.feedback.Correct() {
		t.Fatalf("Q2 feedback = %+v, want incorrect", s.feedback)
	}
	if s.state.Answers[2] != "False" {
		t.Errorf("Q2 answer = %q, want False", s.state.Answers[2])
	}

	// Q3: open-ended answer.
	s.Update(specialKey(tea.KeyEnter))
	if s.mcActive {
		t.Fatal("expected text input for an open question")
	}
	typeText(s, "an encrypted tunnel")
	s.Update(specialKey(tea.KeyEnter))
	if s.state.Phase != sess.PhaseDone {
		t.Fatalf("phase = %v, want done", s.state.Phase)
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command to show the summary")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}
	if completed == nil || completed.Result == nil {
		t.Fatal("completion hook should receive the graded state")
	}
	if completed.Result.Total != 2 {
		t.Errorf("total = %v, want 2", completed.Result.Total)
	}
	if !strings.Contains(msg.Screen.View(100, 40), "Report saved to reports/x.html") {
		t.Error("summary should show the completion note")
	}

	// Further keys are ignored once finished.
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("expected no command after finishing")
	}
}

func TestSessionScreen_EmptyAnswerAllowed(t *testing.T) {
	q := &quiz.Quiz{Questions: []quiz.Question{
		{ID: 1, Kind: quiz.OpenEnded{}, Text: "Define IDS.", Answer: "intrusion detection system"},
	}}
	s := New(&fakeSource{quiz: q}, quiz.DefaultCounts(), "", nil)
	start(t, s)

	s.Update(specialKey(tea.KeyEnter))
	if s.feedback == nil {
		t.Fatal("expected feedback")
	}
	if s.feedback.Comment != "No answer given." {
		t.Errorf("comment = %q", s.feedback.Comment)
	}
	if !strings.Contains(s.View(100, 30), "(no answer given)") {
		t.Error("expected placeholder for the empty answer")
	}
}

func TestSessionScreen_CompletionError(t *testing.T) {
	q := &quiz.Quiz{Questions: []quiz.Question{
		{ID: 1, Kind: quiz.TrueFalse{}, Text: "SSH uses port 22.", Answer: "True"},
	}}
	hook := func(context.Context, *sess.State) (string, error) {
		return "", errors.New("disk full")
	}
	s := New(&fakeSource{quiz: q}, quiz.DefaultCounts(), "", hook)
	start(t, s)

	s.Update(specialKey(tea.KeyEnter))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	msg := cmd().(router.ReplaceScreenMsg)
	if !strings.Contains(msg.Screen.View(100, 30), "Could not save results: disk full") {
		t.Error("expected the save error on the summary screen")
	}
}

func TestSessionScreen_GenerationError(t *testing.T) {
	s := New(&fakeSource{err: errors.New("connection refused")}, quiz.DefaultCounts(), "", nil)
	start(t, s)

	if s.state.Phase != sess.PhaseChooseMode {
		t.Errorf("phase = %v, want choose mode after failure", s.state.Phase)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Could not generate a quiz: connection refused") {
		t.Errorf("unexpected view:\n%s", view)
	}

	_, cmd := s.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("expected a command to go back")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestSessionScreen_NoQuestions(t *testing.T) {
	s := New(&fakeSource{quiz: &quiz.Quiz{}}, quiz.DefaultCounts(), "", nil)
	start(t, s)
	if !strings.Contains(s.View(100, 30), "did not return any usable questions") {
		t.Error("expected empty quiz message")
	}
}

func TestSessionScreen_KeysIgnoredWhileGenerating(t *testing.T) {
	s := New(&fakeSource{quiz: testQuiz()}, quiz.DefaultCounts(), "", nil)
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("expected no command while generating")
	}
	if len(s.KeyHints()) != 1 {
		t.Errorf("KeyHints = %v", s.KeyHints())
	}
}

func TestSessionScreen_ShowsMixNotice(t *testing.T) {
	q := testQuiz()
	q.Requested = quiz.Counts{MCQ: 2, TF: 2, Open: 1}
	s := New(&fakeSource{quiz: q}, q.Requested, "", nil)
	start(t, s)

	if !strings.Contains(s.View(120, 40), "Note: the model returned 1 mcq, 1 tf, 1 open") {
		t.Error("expected the question mix notice on the first question")
	}
}
