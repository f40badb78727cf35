package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/grading"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past quiz attempts",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.AttemptRepo().List(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No quiz attempts found.")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %-19s  %-24s  %3s  %-11s  %6s\n",
			"ID", "Timestamp", "Topic", "Qs", "Score", "%")
		fmt.Fprintln(out, strings.Repeat("─", 82))

		for _, a := range attempts {
			topic := a.Topic
			if topic == "" {
				topic = "(random)"
			}
			fmt.Fprintf(out, "%-8s  %-19s  %-24s  %3d  %5.2f/%-5.2f  %5.1f%%\n",
				truncate(a.ID, 8),
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(topic, 24),
				a.QuestionCount,
				a.TotalScore, a.MaxScore,
				a.Percentage,
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the graded questions of one attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		a, err := s.AttemptRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get attempt: %w", err)
		}
		if a == nil {
			return fmt.Errorf("attempt %q not found", args[0])
		}

		var res grading.Result
		if err := json.Unmarshal(a.ResultJSON, &res); err != nil {
			return fmt.Errorf("decode attempt %s: %w", a.ID, err)
		}

		out := cmd.OutOrStdout()
		topic := a.Topic
		if topic == "" {
			topic = "(random)"
		}
		fmt.Fprintf(out, "ID:      %s\n", a.ID)
		fmt.Fprintf(out, "Time:    %s\n", a.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Topic:   %s\n", topic)
		if a.ReportPath != "" {
			fmt.Fprintf(out, "Report:  %s\n", a.ReportPath)
		}
		fmt.Fprintln(out)
		printResult(out, res)
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}
