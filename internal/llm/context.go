package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// Purpose labels recorded with each LLM request event, one per quiz mode.
const (
	PurposeRandomQuiz = "quiz-random"
	PurposeTopicQuiz  = "quiz-topic"
)

// QuizPurpose returns the purpose label for a quiz generated for topic. An
// empty topic means a random quiz.
func QuizPurpose(topic string) string {
	if topic == "" {
		return PurposeRandomQuiz
	}
	return PurposeTopicQuiz
}

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
