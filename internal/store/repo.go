package store

import (
	"context"
	"time"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // LLM events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
}

// Chunk is one indexed passage of course material.
type Chunk struct {
	ID       int64
	Source   string
	Page     *int
	Position int
	Content  string
}

// SourceSummary describes one ingested source file.
type SourceSummary struct {
	Source string
	Chunks int
}

// ChunkRepo stores course material chunks and serves full-text lookups.
type ChunkRepo interface {
	// ReplaceSource deletes every chunk of source and inserts chunks in
	// one transaction.
	ReplaceSource(ctx context.Context, source string, chunks []Chunk) error

	// Search returns up to k chunks ranked by BM25 relevance to query.
	Search(ctx context.Context, query string, k int) ([]Chunk, error)

	// Sources lists ingested sources with their chunk counts.
	Sources(ctx context.Context) ([]SourceSummary, error)

	// Count returns the total number of chunks.
	Count(ctx context.Context) (int, error)
}

// AttemptData captures a graded quiz. Quiz and result are stored as JSON
// documents so the store stays independent of the quiz types.
type AttemptData struct {
	QuizID        string
	Topic         string
	QuestionCount int
	TotalScore    float64
	MaxScore      float64
	Percentage    float64
	ReportPath    string
	QuizJSON      []byte
	ResultJSON    []byte
}

// AttemptRecord is a stored quiz attempt.
type AttemptRecord struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	AttemptData
}

// AttemptRepo persists graded quizzes.
type AttemptRepo interface {
	// Save stores an attempt and returns its id.
	Save(ctx context.Context, data AttemptData) (string, error)

	// List returns attempts newest first.
	List(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)

	// Get returns one attempt by id or unique id prefix, or nil.
	Get(ctx context.Context, id string) (*AttemptRecord, error)
}
