package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/llm"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/report"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/retrieval"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/session"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func setupLogging(cmd *cobra.Command) {
	slog.SetDefault(slog.New(newLogHandler(viperForCmd(cmd), os.Stderr)))
}

// newLogHandler builds the handler selected by log-level and log-format.
func newLogHandler(v *viper.Viper, w io.Writer) slog.Handler {
	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		return slog.NewJSONHandler(w, handlerOpts)
	default:
		return slog.NewTextHandler(w, handlerOpts)
	}
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("NETSEC_QUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("netsec-quiz")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/netsec-quiz")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// addQuizFlags registers the flags shared by every command that runs a quiz.
func addQuizFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("mcq", 2, "Number of multiple-choice questions")
	f.Int("tf", 2, "Number of true/false questions")
	f.Int("open", 1, "Number of open-ended questions")
	f.String("reports-dir", report.DefaultDir, "Directory for HTML and JSON reports")
	f.Bool("json-mode", true, "Ask providers with a native JSON mode to use it")
}

// llmConfig layers viper settings over the LLM environment config. When no
// provider is named anywhere, the first provider with a standard API key
// env var wins, then the local Ollama default.
func llmConfig(v *viper.Viper) llm.Config {
	cfg := llm.ConfigFromEnv()
	if v.GetString("llm-provider") == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		}
	} else {
		cfg.Provider = v.GetString("llm-provider")
	}

	if m := v.GetString("llm-model"); m != "" {
		switch cfg.Provider {
		case "ollama":
			cfg.Ollama.Model = m
		case "anthropic":
			cfg.Anthropic.Model = m
		case "openai":
			cfg.OpenAI.Model = m
		case "gemini":
			cfg.Gemini.Model = m
		case "openrouter":
			cfg.OpenRouter.Model = m
		}
	}
	if u := v.GetString("ollama-base-url"); u != "" {
		cfg.Ollama.BaseURL = u
	}
	if f := v.GetString("mock-response-file"); f != "" {
		cfg.Mock.ResponseFile = f
	}
	if v.IsSet("llm-retries") {
		cfg.Retry.MaxAttempts = v.GetInt("llm-retries")
	}
	if v.IsSet("llm-timeout") {
		cfg.Timeout = v.GetDuration("llm-timeout")
	}
	return cfg
}

// quizCounts reads the requested question mix.
func quizCounts(v *viper.Viper) (quiz.Counts, error) {
	counts := quiz.Counts{
		MCQ:  v.GetInt("mcq"),
		TF:   v.GetInt("tf"),
		Open: v.GetInt("open"),
	}
	if err := counts.Validate(); err != nil {
		return quiz.Counts{}, err
	}
	return counts, nil
}

// generatorConfig reads generation settings, starting from quiz defaults.
func generatorConfig(v *viper.Viper) quiz.Config {
	cfg := quiz.DefaultConfig()
	cfg.JSONMode = v.GetBool("json-mode")
	if v.IsSet("random-k") {
		cfg.RandomK = v.GetInt("random-k")
	}
	if v.IsSet("topic-k") {
		cfg.TopicK = v.GetInt("topic-k")
	}
	if v.IsSet("temperature") {
		cfg.Temperature = v.GetFloat64("temperature")
	}
	if v.IsSet("max-tokens") {
		cfg.MaxTokens = v.GetInt("max-tokens")
	}
	return cfg
}

// quizRuntime holds everything a quiz front-end needs.
type quizRuntime struct {
	store    *store.Store
	source   quiz.Source
	counts   quiz.Counts
	complete session.CompleteFunc
}

// newQuizRuntime opens the store and wires retrieval, the LLM provider and
// the generator together. Callers must Close the result.
func newQuizRuntime(ctx context.Context, cmd *cobra.Command) (*quizRuntime, error) {
	v := viperForCmd(cmd)

	counts, err := quizCounts(v)
	if err != nil {
		return nil, err
	}

	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(ctx, llmConfig(v), st.EventRepo())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	contexts := retrieval.NewProvider(retrieval.NewStoreIndex(st.ChunkRepo()))
	gen := quiz.NewGenerator(contexts, provider, generatorConfig(v), quiz.WithLogger(slog.Default()))

	return &quizRuntime{
		store:    st,
		source:   gen,
		counts:   counts,
		complete: saveAttempt(report.NewWriter(v.GetString("reports-dir")), st.AttemptRepo()),
	}, nil
}

func (r *quizRuntime) Close() error {
	return r.store.Close()
}

// saveAttempt returns the completion hook that writes the reports and
// records the attempt.
func saveAttempt(w *report.Writer, attempts store.AttemptRepo) session.CompleteFunc {
	return func(ctx context.Context, s *session.State) (string, error) {
		if s.Quiz == nil || s.Result == nil {
			return "", fmt.Errorf("session %s has not been graded", s.ID)
		}

		paths, err := w.Write(s.Quiz, *s.Result)
		if err != nil {
			return "", fmt.Errorf("write report: %w", err)
		}

		quizJSON, err := json.Marshal(s.Quiz)
		if err != nil {
			return "", fmt.Errorf("encode quiz: %w", err)
		}
		resultJSON, err := json.Marshal(s.Result)
		if err != nil {
			return "", fmt.Errorf("encode result: %w", err)
		}

		id, err := attempts.Save(ctx, store.AttemptData{
			QuizID:        s.Quiz.ID,
			Topic:         s.Quiz.Topic,
			QuestionCount: len(s.Quiz.Questions),
			TotalScore:    s.Result.Total,
			MaxScore:      s.Result.Max,
			Percentage:    s.Result.Percentage,
			ReportPath:    paths.HTML,
			QuizJSON:      quizJSON,
			ResultJSON:    resultJSON,
		})
		if err != nil {
			return "", fmt.Errorf("save attempt: %w", err)
		}
		slog.Info("quiz attempt saved", "attempt", id, "report", paths.HTML)

		return fmt.Sprintf("Report saved to %s", paths.HTML), nil
	}
}
