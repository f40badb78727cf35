// Package session holds the per-learner quiz flow: choosing a mode,
// generating a quiz, answering questions one at a time, and grading.
//
// Each learner owns one State. Nothing in this package is shared between
// sessions, so independent sessions may run concurrently.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/grading"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
)

// Phase is the step of the quiz flow a session is in.
type Phase int

const (
	PhaseChooseMode  Phase = iota // Waiting for random or topic
	PhaseChooseTopic              // Waiting for a topic
	PhaseGenerating               // Quiz is being generated
	PhaseAsking                   // Serving questions
	PhaseDone                     // Graded
)

func (p Phase) String() string {
	switch p {
	case PhaseChooseMode:
		return "choose_mode"
	case PhaseChooseTopic:
		return "choose_topic"
	case PhaseGenerating:
		return "generating"
	case PhaseAsking:
		return "asking"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Mode selects how the quiz context is retrieved.
type Mode int

const (
	ModeUnset Mode = iota
	ModeRandom
	ModeTopic
)

func (m Mode) String() string {
	switch m {
	case ModeRandom:
		return "random"
	case ModeTopic:
		return "topic"
	default:
		return "unset"
	}
}

// Errors returned for out-of-order or invalid steps.
var (
	ErrInvalidMode  = errors.New("mode must be 1 (random) or 2 (topic)")
	ErrEmptyTopic   = errors.New("topic must not be empty")
	ErrWrongPhase   = errors.New("action not allowed in current phase")
	ErrNoQuestions  = errors.New("quiz has no questions")
	ErrQuizComplete = errors.New("quiz already complete")
)

// State is the explicit state of one quiz session. Every step takes and
// mutates the State it is given; there is no ambient session storage.
type State struct {
	ID        string
	Phase     Phase
	Mode      Mode
	Topic     string
	Counts    quiz.Counts
	StartedAt time.Time

	Quiz    *quiz.Quiz
	Answers grading.AnswerSet
	Index   int // position of the current question in Quiz.Questions

	// Result is set once the last question has been answered.
	Result *grading.Result
}

// New starts a session that will request counts questions.
func New(counts quiz.Counts) *State {
	return &State{
		ID:        uuid.NewString(),
		Phase:     PhaseChooseMode,
		Counts:    counts,
		StartedAt: time.Now(),
		Answers:   grading.AnswerSet{},
	}
}

// ChooseMode accepts "1" for a random quiz or "2" for a topic quiz.
func (s *State) ChooseMode(input string) error {
	if s.Phase != PhaseChooseMode {
		return ErrWrongPhase
	}
	switch strings.TrimSpace(input) {
	case "1":
		s.Mode = ModeRandom
		s.Phase = PhaseGenerating
	case "2":
		s.Mode = ModeTopic
		s.Phase = PhaseChooseTopic
	default:
		return ErrInvalidMode
	}
	return nil
}

// ChooseTopic records the topic for a topic quiz.
func (s *State) ChooseTopic(topic string) error {
	if s.Phase != PhaseChooseTopic {
		return ErrWrongPhase
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ErrEmptyTopic
	}
	s.Topic = topic
	s.Phase = PhaseGenerating
	return nil
}

// Begin attaches a generated quiz and moves to the first question. A quiz
// without questions is rejected and the session returns to mode selection.
func (s *State) Begin(q *quiz.Quiz) error {
	if s.Phase != PhaseGenerating {
		return ErrWrongPhase
	}
	if q == nil || len(q.Questions) == 0 {
		s.Abort()
		return ErrNoQuestions
	}
	s.Quiz = q
	s.Answers = grading.AnswerSet{}
	s.Index = 0
	s.Result = nil
	s.Phase = PhaseAsking
	return nil
}

// Abort discards any pending generation and returns to mode selection.
func (s *State) Abort() {
	s.Phase = PhaseChooseMode
	s.Mode = ModeUnset
	s.Topic = ""
	s.Quiz = nil
}

// Current returns the question awaiting an answer.
func (s *State) Current() (quiz.Question, bool) {
	if s.Phase != PhaseAsking || s.Index >= len(s.Quiz.Questions) {
		return quiz.Question{}, false
	}
	return s.Quiz.Questions[s.Index], true
}

// Answer records the answer to the current question and advances. The
// returned item is the grade of that single question, for immediate
// feedback. After the last question the whole quiz is graded and the
// session moves to PhaseDone.
func (s *State) Answer(text string) (grading.ItemResult, error) {
	if s.Phase == PhaseDone {
		return grading.ItemResult{}, ErrQuizComplete
	}
	q, ok := s.Current()
	if !ok {
		return grading.ItemResult{}, ErrWrongPhase
	}

	text = strings.TrimSpace(text)
	s.Answers[q.ID] = text
	s.Index++

	if s.Index >= len(s.Quiz.Questions) {
		res := grading.Grade(s.Quiz, s.Answers)
		s.Result = &res
		s.Phase = PhaseDone
	}
	return grading.GradeQuestion(q, text), nil
}

// Progress returns how many questions have been answered and the total.
func (s *State) Progress() (answered, total int) {
	if s.Quiz == nil {
		return 0, 0
	}
	return s.Index, len(s.Quiz.Questions)
}
