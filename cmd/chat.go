package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/session"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Take a quiz as a chat conversation",
	Long: "chat runs the conversational quiz flow: reply 1 or 2 to pick a random or\n" +
		"topic quiz, then answer each question in turn.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := newQuizRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		chat := session.NewChat(rt.source,
			session.WithCompletion(rt.complete),
			session.WithChatLogger(slog.Default()),
		)
		return runChat(ctx, chat, session.New(rt.counts), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	addQuizFlags(chatCmd)
}

// runChat feeds each input line to chat until the session is graded or
// input ends.
func runChat(ctx context.Context, chat *session.Chat, s *session.State, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "assistant> %s\n\n", chat.Welcome(s))

	scanner := bufio.NewScanner(in)
	for s.Phase != session.PhaseDone {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		for _, reply := range chat.Handle(ctx, s, scanner.Text()) {
			fmt.Fprintf(out, "assistant> %s\n\n", reply)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
