package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/store"
)

// NewProvider creates a Provider from configuration.
// The result is wrapped as caller → timeout → retry → logging → base, so
// every attempt lands in the event log and the timeout covers all retries.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "ollama":
		base, err = NewOllamaProvider(cfg.Ollama)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		if cfg.Mock.ResponseFile == "" {
			base = NewMockProvider()
		} else {
			base, err = NewMockProviderFromFile(cfg.Mock.ResponseFile)
		}
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo != nil {
		base = WithLogging(base, cfg.Provider, eventRepo)
	}
	return WithTimeout(WithRetry(base, cfg.Retry), cfg.Timeout), nil
}

type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout bounds every Generate call by d. A non-positive d returns p
// unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{inner: p, timeout: d}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
