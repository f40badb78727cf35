package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/app"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screens/home"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive quiz app",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	addQuizFlags(playCmd)
	addAppFlags(playCmd)
}

// addAppFlags registers the flags of the interactive app.
func addAppFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("skip-welcome", false, "Start on the home screen")
	cmd.Flags().String("log-file", "", "Log file while the app is running (default: next to the database)")
}

// runApp builds the quiz runtime and hands it to the TUI. Logs go to a
// file for the lifetime of the app so they do not tear the screen.
func runApp(cmd *cobra.Command) error {
	logFile, err := openAppLog(cmd)
	if err != nil {
		return err
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(newLogHandler(viperForCmd(cmd), logFile)))

	rt, err := newQuizRuntime(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	skip, _ := cmd.Flags().GetBool("skip-welcome")
	return app.Run(app.Options{
		Deps: home.Deps{
			Source:     rt.source,
			Counts:     rt.counts,
			Attempts:   rt.store.AttemptRepo(),
			Chunks:     rt.store.ChunkRepo(),
			OnComplete: rt.complete,
		},
		SkipWelcome: skip,
	})
}

func openAppLog(cmd *cobra.Command) (*os.File, error) {
	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		path = filepath.Join(filepath.Dir(dbPath), "netsec-quiz.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
