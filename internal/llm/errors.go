package llm

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the provider answered without any usable
// text, e.g. no choices or no text block.
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit. Content holds the partial text.
type ErrMaxTokensExceeded struct {
	Content   string
	MaxTokens int
}

func (e *ErrMaxTokensExceeded) Error() string {
	if e.MaxTokens > 0 {
		return fmt.Sprintf("LLM response truncated at %d tokens; raise max-tokens", e.MaxTokens)
	}
	return "LLM response truncated: max tokens exceeded"
}

// checkTruncated reports a response that stopped at the token limit as
// ErrMaxTokensExceeded, since a cut-off quiz is never complete JSON.
func checkTruncated(resp *Response, maxTokens int) (*Response, error) {
	if resp.StopReason == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content, MaxTokens: maxTokens}
	}
	return resp, nil
}
