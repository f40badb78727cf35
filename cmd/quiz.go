package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/session"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a quiz in the terminal, one question per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := newQuizRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		topic, _ := cmd.Flags().GetString("topic")
		random, _ := cmd.Flags().GetBool("random")

		lq := &lineQuiz{
			source:   rt.source,
			counts:   rt.counts,
			complete: rt.complete,
			in:       bufio.NewScanner(cmd.InOrStdin()),
			out:      cmd.OutOrStdout(),
		}
		return lq.run(ctx, random, topic)
	},
}

func init() {
	addQuizFlags(quizCmd)
	quizCmd.Flags().StringP("topic", "t", "", "Generate a topic quiz without prompting")
	quizCmd.Flags().Bool("random", false, "Generate a random quiz without prompting")
}

// lineQuiz runs one quiz over a plain line-oriented terminal.
type lineQuiz struct {
	source   quiz.Source
	counts   quiz.Counts
	complete session.CompleteFunc
	in       *bufio.Scanner
	out      io.Writer
}

func (lq *lineQuiz) run(ctx context.Context, random bool, topic string) error {
	s := session.New(lq.counts)

	fmt.Fprintln(lq.out, "Network Security Quiz")
	fmt.Fprintf(lq.out, "%d questions per quiz (%s).\n\n", lq.counts.Total(), lq.counts)

	mode := "1"
	switch {
	case topic != "":
		mode = "2"
	case !random:
		fmt.Fprintln(lq.out, "[1] Random quiz (mixed topics)")
		fmt.Fprintln(lq.out, "[2] Topic-based quiz (focus on one area)")
		fmt.Fprintln(lq.out)
		mode = lq.prompt("Enter 1 or 2: ")
	}
	if err := s.ChooseMode(mode); err != nil {
		return fmt.Errorf("choose mode %q: %w", mode, err)
	}

	if s.Mode == session.ModeTopic {
		if topic == "" {
			topic = lq.prompt("Enter topic (e.g. 'TLS', 'firewalls', 'VPN'): ")
		}
		if err := s.ChooseTopic(topic); err != nil {
			return err
		}
	}

	var q *quiz.Quiz
	var err error
	if s.Mode == session.ModeTopic {
		fmt.Fprintf(lq.out, "Generating Topic Quiz on %q...\n", s.Topic)
		q, err = lq.source.GenerateTopic(ctx, s.Topic, s.Counts)
	} else {
		fmt.Fprintln(lq.out, "Generating Random Quiz from local materials...")
		q, err = lq.source.GenerateRandom(ctx, s.Counts)
	}
	if err != nil {
		return fmt.Errorf("generate quiz: %w", err)
	}
	if err := s.Begin(q); err != nil {
		return err
	}

	if notice := session.MixNotice(q); notice != "" {
		fmt.Fprintln(lq.out, notice)
	}
	fmt.Fprintln(lq.out, "\n===== QUIZ START =====")
	for {
		question, ok := s.Current()
		if !ok {
			break
		}
		fmt.Fprintf(lq.out, "\n%s\n", session.FormatQuestion(question))
		if _, err := s.Answer(lq.prompt("Your answer: ")); err != nil {
			return err
		}
	}
	fmt.Fprintln(lq.out, "\n===== QUIZ COMPLETE =====")

	fmt.Fprintln(lq.out, "\n===== QUIZ FEEDBACK =====")
	fmt.Fprintln(lq.out, session.FormatSummary(*s.Result))
	for _, item := range s.Result.Items {
		fmt.Fprintf(lq.out, "\n%s\n%s\n", session.FormatFeedback(item), strings.Repeat("-", 40))
	}

	if lq.complete != nil {
		msg, err := lq.complete(ctx, s)
		if err != nil {
			return err
		}
		fmt.Fprintf(lq.out, "\n%s\n", msg)
	}
	return nil
}

// prompt prints label and reads one line. End of input reads as an empty
// answer.
func (lq *lineQuiz) prompt(label string) string {
	fmt.Fprint(lq.out, label)
	if !lq.in.Scan() {
		fmt.Fprintln(lq.out)
		return ""
	}
	return strings.TrimSpace(lq.in.Text())
}
