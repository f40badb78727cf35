package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
)

// CompleteFunc is called once a session has been graded. It returns a
// message for the learner, typically where the report was saved.
type CompleteFunc func(ctx context.Context, s *State) (string, error)

// Chat drives a State from free-form chat messages, one message in and a
// list of replies out.
type Chat struct {
	source     quiz.Source
	onComplete CompleteFunc
	logger     *slog.Logger
}

// ChatOption configures a Chat.
type ChatOption func(*Chat)

// WithCompletion sets the hook run after grading.
func WithCompletion(fn CompleteFunc) ChatOption {
	return func(c *Chat) { c.onComplete = fn }
}

// WithChatLogger sets the logger.
func WithChatLogger(l *slog.Logger) ChatOption {
	return func(c *Chat) { c.logger = l }
}

// NewChat creates a Chat that generates quizzes from source.
func NewChat(source quiz.Source, opts ...ChatOption) *Chat {
	c := &Chat{source: source, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Welcome is the first message of a session.
func (c *Chat) Welcome(s *State) string {
	counts := s.Counts
	return fmt.Sprintf("Network Security Quiz (local only)\n\n"+
		"Each quiz has %d questions:\n"+
		"- %d Multiple-Choice (MCQ)\n"+
		"- %d True/False (TF)\n"+
		"- %d Open-Ended (OPEN)\n\n"+
		"Choose:\n"+
		"1. Random Quiz\n"+
		"2. Topic Quiz\n\n"+
		"Reply with 1 or 2.",
		counts.Total(), counts.MCQ, counts.TF, counts.Open)
}

// Handle advances s with one message and returns the replies to show.
func (c *Chat) Handle(ctx context.Context, s *State, message string) []string {
	message = strings.TrimSpace(message)

	switch s.Phase {
	case PhaseChooseMode:
		if err := s.ChooseMode(message); err != nil {
			return []string{"Reply ONLY with 1 or 2."}
		}
		if s.Mode == ModeTopic {
			return []string{"Enter topic (e.g. TLS, firewalls, VPN):"}
		}
		return c.generate(ctx, s, "Generating Random Quiz from local materials...")

	case PhaseChooseTopic:
		if err := s.ChooseTopic(message); err != nil {
			return []string{"Enter topic (e.g. TLS, firewalls, VPN):"}
		}
		return c.generate(ctx, s, fmt.Sprintf("Generating Topic Quiz on %q...", s.Topic))

	case PhaseAsking:
		if _, err := s.Answer(message); err != nil {
			return []string{err.Error()}
		}
		if q, ok := s.Current(); ok {
			return []string{FormatQuestion(q)}
		}
		return c.finish(ctx, s)

	case PhaseDone:
		return []string{"Quiz already complete. Start a new chat for another quiz."}

	default:
		return []string{"Please wait, the quiz is still being generated."}
	}
}

func (c *Chat) generate(ctx context.Context, s *State, announce string) []string {
	replies := []string{announce}

	var q *quiz.Quiz
	var err error
	if s.Mode == ModeTopic {
		q, err = c.source.GenerateTopic(ctx, s.Topic, s.Counts)
	} else {
		q, err = c.source.GenerateRandom(ctx, s.Counts)
	}
	if err == nil {
		err = s.Begin(q)
	} else {
		s.Abort()
	}

	if err != nil {
		c.logger.Error("quiz generation failed", "session", s.ID, "mode", s.Mode.String(), "error", err)
		msg := fmt.Sprintf("Could not generate a quiz: %v", err)
		if errors.Is(err, ErrNoQuestions) {
			msg = "The model did not return any usable questions."
		}
		return append(replies, msg, "Reply with 1 or 2 to try again.")
	}

	replies = append(replies, "Quiz ready! Let's begin.")
	if notice := MixNotice(s.Quiz); notice != "" {
		replies = append(replies, notice)
	}
	first, _ := s.Current()
	return append(replies, FormatQuestion(first))
}

func (c *Chat) finish(ctx context.Context, s *State) []string {
	replies := []string{"Grading your quiz...", "Quiz Summary\n" + FormatSummary(*s.Result)}
	for _, item := range s.Result.Items {
		replies = append(replies, FormatFeedback(item))
	}

	if c.onComplete != nil {
		msg, err := c.onComplete(ctx, s)
		if err != nil {
			c.logger.Error("saving quiz results failed", "session", s.ID, "error", err)
			msg = fmt.Sprintf("Could not save results: %v", err)
		}
		if msg != "" {
			replies = append(replies, msg)
		}
	}
	return replies
}
