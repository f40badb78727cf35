package retrieval

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	passages []Passage
	err      error
	queries  []string
	ks       []int
}

func (f *fakeIndex) SimilarityQuery(_ context.Context, query string, k int) ([]Passage, error) {
	f.queries = append(f.queries, query)
	f.ks = append(f.ks, k)
	return f.passages, f.err
}

func page(n int) *int { return &n }

func TestAssemble(t *testing.T) {
	c := Assemble([]Passage{
		{Content: "CIA triad", Source: "lec1.pdf", Page: page(3)},
		{Content: "X.800 services", Source: "lec1.pdf", Page: page(3)},
		{Content: "", Source: "book.pdf", Page: page(0)},
		{Content: "no source"},
		{Content: "slides", Source: "slides.pptx"},
	})

	assert.Equal(t, "CIA triad\n\nX.800 services\n\nno source\n\nslides", c.Text)
	assert.Equal(t, []string{"lec1.pdf_page3", "book.pdf_page0", "slides.pptx"}, c.Citations)
}

func TestCitation(t *testing.T) {
	tests := []struct {
		name string
		p    Passage
		want string
	}{
		{"with page", Passage{Source: "a.pdf", Page: page(12)}, "a.pdf_page12"},
		{"page zero", Passage{Source: "a.pdf", Page: page(0)}, "a.pdf_page0"},
		{"no page", Passage{Source: "a.pdf"}, "a.pdf"},
		{"no source", Passage{Page: page(1)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Citation(tt.p))
		})
	}
}

func TestGetContextTopic(t *testing.T) {
	idx := &fakeIndex{passages: []Passage{{Content: "TLS uses certificates", Source: "tls.pdf", Page: page(1)}}}
	p := NewProvider(idx)

	c, err := p.GetContext(context.Background(), "  TLS  ", 8)
	require.NoError(t, err)

	assert.Equal(t, []string{"TLS"}, idx.queries)
	assert.Equal(t, []int{8}, idx.ks)
	assert.Equal(t, "TLS", c.Query)
	assert.Equal(t, "TLS uses certificates", c.Text)
	assert.Equal(t, []string{"tls.pdf_page1"}, c.Citations)
}

func TestGetContextRandomUsesSeedPool(t *testing.T) {
	idx := &fakeIndex{passages: []Passage{{Content: "x", Source: "s"}}}
	p := NewProvider(idx, WithRand(rand.New(rand.NewPCG(1, 2))))

	for range 20 {
		_, err := p.GetContext(context.Background(), "", 6)
		require.NoError(t, err)
	}
	for _, q := range idx.queries {
		assert.True(t, slices.Contains(SeedQueries, q), "unexpected query %q", q)
	}
}

func TestGetContextRandomReproducible(t *testing.T) {
	run := func() []string {
		idx := &fakeIndex{passages: []Passage{{Content: "x"}}}
		p := NewProvider(idx, WithRand(rand.New(rand.NewPCG(42, 7))))
		for range 5 {
			_, err := p.GetContext(context.Background(), "", 6)
			require.NoError(t, err)
		}
		return idx.queries
	}
	assert.Equal(t, run(), run())
}

func TestGetContextErrors(t *testing.T) {
	t.Run("empty result", func(t *testing.T) {
		p := NewProvider(&fakeIndex{})
		_, err := p.GetContext(context.Background(), "firewalls", 8)

		var rerr *Error
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "firewalls", rerr.Query)
		assert.ErrorIs(t, err, ErrNoDocuments)
	})

	t.Run("index failure", func(t *testing.T) {
		boom := errors.New("index unreachable")
		p := NewProvider(&fakeIndex{err: boom})
		_, err := p.GetContext(context.Background(), "vpn", 8)

		var rerr *Error
		require.ErrorAs(t, err, &rerr)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("non-positive k", func(t *testing.T) {
		idx := &fakeIndex{}
		p := NewProvider(idx)
		_, err := p.GetContext(context.Background(), "vpn", 0)
		require.Error(t, err)
		assert.Empty(t, idx.queries)
	})
}
