package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/grading"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/report"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/session"
	"github.com/spf13/cobra"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <quiz.json> <answers.json>",
	Short: "Grade a saved quiz against a file of answers",
	Long: "grade scores a quiz export (or bare quiz JSON) against an answers file that\n" +
		"maps question ids to answers, for example {\"1\": \"A\", \"2\": \"True\"}.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		export, err := readExportFile(args[0])
		if err != nil {
			return err
		}
		answers, err := readAnswersFile(args[1])
		if err != nil {
			return err
		}

		res := grading.Grade(export.Quiz, answers)
		printResult(cmd.OutOrStdout(), res)

		if dir, _ := cmd.Flags().GetString("save"); dir != "" {
			paths, err := report.NewWriter(dir).Write(export.Quiz, res)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nReport saved to %s\n", paths.HTML)
		}
		return nil
	},
}

func init() {
	gradeCmd.Flags().String("save", "", "Also write HTML and JSON reports into this directory")
}

func readExportFile(path string) (*report.Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	e, err := report.ReadExport(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return e, nil
}

func readAnswersFile(path string) (grading.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var answers grading.AnswerSet
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("decode answers %s: %w", path, err)
	}
	return answers, nil
}

func printResult(out io.Writer, res grading.Result) {
	fmt.Fprintln(out, session.FormatSummary(res))
	for _, item := range res.Items {
		fmt.Fprintf(out, "\n%s\n", session.FormatFeedback(item))
	}
}
