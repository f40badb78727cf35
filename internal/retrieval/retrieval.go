package retrieval

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
)

// SeedQueries is the fixed pool used when no topic is given.
var SeedQueries = []string{
	"network security overview",
	"security services and mechanisms",
	"active and passive attacks",
	"OSI security architecture X.800",
	"CIA triad confidentiality integrity availability",
}

// ErrNoDocuments indicates the index returned no passages.
var ErrNoDocuments = errors.New("no documents matched")

// Error wraps a failed lookup. Generation must not proceed after one.
type Error struct {
	Query string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("retrieval for %q failed: %v", e.Query, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Passage is one chunk returned by the index.
type Passage struct {
	Content string
	Source  string
	Page    *int // nil when the page is unknown
}

// Index is a top-k similarity lookup over course material.
type Index interface {
	SimilarityQuery(ctx context.Context, query string, k int) ([]Passage, error)
}

// Context is the assembled generation context.
type Context struct {
	Text      string
	Citations []string
	Query     string
}

// Provider assembles generation context from an Index.
type Provider struct {
	index Index

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Provider.
type Option func(*Provider)

// WithRand sets the random source used to pick seed queries.
func WithRand(r *rand.Rand) Option {
	return func(p *Provider) { p.rng = r }
}

// NewProvider creates a Provider over index.
func NewProvider(index Index, opts ...Option) *Provider {
	p := &Provider{
		index: index,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetContext runs a single top-k lookup for topic, or for a random seed
// query when topic is blank, and assembles the result.
func (p *Provider) GetContext(ctx context.Context, topic string, k int) (Context, error) {
	if k <= 0 {
		return Context{}, fmt.Errorf("k must be positive, got %d", k)
	}

	query := strings.TrimSpace(topic)
	if query == "" {
		query = p.seedQuery()
	}

	passages, err := p.index.SimilarityQuery(ctx, query, k)
	if err != nil {
		return Context{}, &Error{Query: query, Err: err}
	}
	if len(passages) == 0 {
		return Context{}, &Error{Query: query, Err: ErrNoDocuments}
	}

	c := Assemble(passages)
	c.Query = query
	return c, nil
}

func (p *Provider) seedQuery() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return SeedQueries[p.rng.IntN(len(SeedQueries))]
}

// Assemble joins passage text with blank lines and collects de-duplicated
// citations in first-seen order. Empty passages add no text but may still
// add a citation.
func Assemble(passages []Passage) Context {
	var parts []string
	var citations []string
	seen := make(map[string]bool)

	for _, p := range passages {
		if p.Content != "" {
			parts = append(parts, p.Content)
		}
		c := Citation(p)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		citations = append(citations, c)
	}

	return Context{
		Text:      strings.Join(parts, "\n\n"),
		Citations: citations,
	}
}

// Citation formats a passage's source as "<source>_page<page>", or just the
// source when the page is unknown. Passages without a source yield "".
func Citation(p Passage) string {
	if p.Source == "" {
		return ""
	}
	if p.Page == nil {
		return p.Source
	}
	return p.Source + "_page" + strconv.Itoa(*p.Page)
}
