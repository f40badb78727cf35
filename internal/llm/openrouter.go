package llm

import "fmt"

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOllamaBaseURL     = "http://localhost:11434/v1"
)

// OpenRouterProvider wraps OpenAIProvider with OpenRouter-specific defaults.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	return &OpenRouterProvider{
		OpenAIProvider: newOpenAICompatible(cfg.APIKey, baseURL, cfg.Model),
	}, nil
}

// OllamaProvider talks to a local Ollama server through its
// OpenAI-compatible endpoint. No API key is needed.
type OllamaProvider struct {
	*OpenAIProvider
}

// NewOllamaProvider creates a provider targeting a local Ollama server.
func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}

	// Ollama ignores the key but the SDK always sends an Authorization header.
	return &OllamaProvider{
		OpenAIProvider: newOpenAICompatible("ollama", baseURL, cfg.Model),
	}, nil
}
