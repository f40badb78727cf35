package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/grading"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/router"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screen"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screens/summary"
	sess "github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/session"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/components"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/layout"
)

// SessionScreen generates a quiz and walks the learner through it one
// question at a time, with feedback after every answer.
type SessionScreen struct {
	source     quiz.Source
	onComplete sess.CompleteFunc
	state      *sess.State

	mc       components.MultiChoice
	input    components.TextInput
	mcActive bool

	feedback *grading.ItemResult
	notice   string
	errMsg   string
	finished bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.ProgressProvider = (*SessionScreen)(nil)

// New creates a SessionScreen. An empty topic requests a random quiz.
// onComplete runs after grading and may be nil.
func New(source quiz.Source, counts quiz.Counts, topic string, onComplete sess.CompleteFunc) *SessionScreen {
	state := sess.New(counts)
	if topic == "" {
		_ = state.ChooseMode("1")
	} else {
		_ = state.ChooseMode("2")
		_ = state.ChooseTopic(topic)
	}
	return &SessionScreen{
		source:     source,
		onComplete: onComplete,
		state:      state,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	source, state := s.source, s.state
	mode, topic, counts := state.Mode, state.Topic, state.Counts
	return func() tea.Msg {
		ctx := context.Background()
		var q *quiz.Quiz
		var err error
		if mode == sess.ModeTopic {
			q, err = source.GenerateTopic(ctx, topic, counts)
		} else {
			q, err = source.GenerateRandom(ctx, counts)
		}
		return quizReadyMsg{Quiz: q, Err: err}
	}
}

func (s *SessionScreen) Title() string {
	if s.state.Mode == sess.ModeTopic {
		return "Topic Quiz: " + s.state.Topic
	}
	return "Random Quiz"
}

func (s *SessionScreen) Progress() (answered, total int) {
	return s.state.Progress()
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "Any key", Description: "Back"}}
	case s.state.Phase == sess.PhaseGenerating:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case s.feedback != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case s.mcActive:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-9", Description: "Jump"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleQuizReady(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if !s.mcActive && s.state.Phase == sess.PhaseAsking {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleQuizReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		slog.Error("quiz generation failed", "session", s.state.ID, "error", msg.Err)
		s.state.Abort()
		s.errMsg = fmt.Sprintf("Could not generate a quiz: %v", msg.Err)
		return s, nil
	}

	s.notice = sess.MixNotice(msg.Quiz)

	if err := s.state.Begin(msg.Quiz); err != nil {
		if errors.Is(err, sess.ErrNoQuestions) {
			s.errMsg = "The model did not return any usable questions."
		} else {
			s.errMsg = err.Error()
		}
		return s, nil
	}
	return s, s.setupQuestion()
}

// setupQuestion prepares the input widget for the current question.
func (s *SessionScreen) setupQuestion() tea.Cmd {
	q, ok := s.state.Current()
	if !ok {
		return nil
	}

	switch k := q.Kind.(type) {
	case quiz.MultipleChoice:
		s.mc = components.NewMultiChoice(k.Options, q.Answer)
		s.mcActive = true
	case quiz.TrueFalse:
		s.mc = components.NewMultiChoice([]string{"True", "False"}, q.Answer)
		s.mcActive = true
	case quiz.OpenEnded:
		s.input = components.NewTextInput("Type your answer...", 0)
		s.mcActive = false
		return s.input.Init()
	}
	return nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch {
	case s.finished, s.state.Phase == sess.PhaseGenerating:
		return s, nil

	case s.feedback != nil:
		if msg.String() == "enter" || msg.String() == "space" {
			return s, s.next()
		}
		return s, nil

	case s.mcActive:
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if s.mc.Submitted {
			s.submit(s.mc.Answer())
		}
		return s, cmd

	default:
		if msg.String() == "enter" {
			s.submit(s.input.Value())
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
}

func (s *SessionScreen) submit(answer string) {
	item, err := s.state.Answer(answer)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	if !s.mcActive {
		s.input.Submit(item.Correct())
	}
	s.feedback = &item
}

// next leaves the feedback view for the following question, or for the
// results once the quiz is graded.
func (s *SessionScreen) next() tea.Cmd {
	s.feedback = nil
	if s.state.Phase != sess.PhaseDone {
		return s.setupQuestion()
	}

	s.finished = true
	state, hook := s.state, s.onComplete
	return func() tea.Msg {
		note := ""
		if hook != nil {
			msg, err := hook(context.Background(), state)
			if err != nil {
				slog.Error("saving quiz results failed", "session", state.ID, "error", err)
				msg = fmt.Sprintf("Could not save results: %v", err)
			}
			note = msg
		}
		return router.ReplaceScreenMsg{Screen: summary.New(state.Quiz, *state.Result, note)}
	}
}
