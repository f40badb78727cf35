package cmd

import (
	"context"
	"fmt"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "netsec-quiz",
	Short: "Quiz yourself on network security course material",
	Long: "netsec-quiz generates network security quizzes from your own course notes.\n" +
		"Questions are written by a language model from passages retrieved out of a\n" +
		"local full-text index, then graded and saved as HTML and JSON reports.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides NETSEC_QUIZ_DB env var)")
	pf.String("config", "", "Config file (default ./netsec-quiz.yaml or ~/.config/netsec-quiz/netsec-quiz.yaml)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("llm-provider", "", "LLM provider: ollama, openai, anthropic, gemini, openrouter, mock")
	pf.String("llm-model", "", "Model name for the selected provider")

	addQuizFlags(rootCmd)
	addAppFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then NETSEC_QUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
