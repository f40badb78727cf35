package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/llm"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/retrieval"
)

// ContextSource supplies retrieval context for a topic. An empty topic
// asks the source to pick a seed query itself.
type ContextSource interface {
	GetContext(ctx context.Context, topic string, k int) (retrieval.Context, error)
}

// Source produces quizzes. It is the seam front-ends depend on.
type Source interface {
	GenerateRandom(ctx context.Context, counts Counts) (*Quiz, error)
	GenerateTopic(ctx context.Context, topic string, counts Counts) (*Quiz, error)
}

// Config controls quiz generation.
type Config struct {
	// RandomK and TopicK are the number of passages retrieved for random
	// and topic quizzes respectively.
	RandomK int
	TopicK  int

	// MaxTokens is the token budget for the model response.
	MaxTokens int

	// Temperature controls model output randomness (0.0-1.0).
	Temperature float64

	// JSONMode asks providers with a native JSON output mode to use it.
	JSONMode bool

	// RequireQuestions turns an empty quiz into ErrEmptyQuiz.
	RequireQuestions bool
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		RandomK:     6,
		TopicK:      8,
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// Generator runs retrieval, prompting, extraction and validation.
type Generator struct {
	contexts ContextSource
	provider llm.Provider
	builder  *Builder
	config   Config
	logger   *slog.Logger
}

var _ Source = (*Generator)(nil)

// NewGenerator creates a Generator.
func NewGenerator(contexts ContextSource, provider llm.Provider, cfg Config, opts ...BuilderOption) *Generator {
	b := NewBuilder(opts...)
	return &Generator{
		contexts: contexts,
		provider: provider,
		builder:  b,
		config:   cfg,
		logger:   b.logger,
	}
}

// GenerateRandom builds a quiz from a randomly chosen seed query.
func (g *Generator) GenerateRandom(ctx context.Context, counts Counts) (*Quiz, error) {
	return g.generate(ctx, "", g.config.RandomK, counts)
}

// GenerateTopic builds a quiz focused on topic.
func (g *Generator) GenerateTopic(ctx context.Context, topic string, counts Counts) (*Quiz, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}
	return g.generate(ctx, topic, g.config.TopicK, counts)
}

func (g *Generator) generate(ctx context.Context, topic string, k int, counts Counts) (*Quiz, error) {
	if err := counts.Validate(); err != nil {
		return nil, err
	}

	rc, err := g.contexts.GetContext(ctx, topic, k)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.QuizPurpose(topic))
	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(rc.Text, topic, counts)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
		JSON:        g.config.JSONMode,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}
	g.logger.Debug("raw model response", "model", resp.Model, "content", resp.Content)

	records, err := ExtractRecords(resp.Content)
	if err != nil {
		return nil, err
	}

	q := g.builder.Build(records, rc.Citations)
	q.Topic = topic
	q.Requested = counts

	if q.CountMismatch() {
		g.logger.Warn("question distribution differs from request",
			"requested", counts.String(), "produced", q.Produced().String())
	}
	if g.config.RequireQuestions && len(q.Questions) == 0 {
		return nil, ErrEmptyQuiz
	}
	return q, nil
}
