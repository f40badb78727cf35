package retrieval

import (
	"context"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/store"
)

// StoreIndex serves similarity queries from the SQLite full-text index.
type StoreIndex struct {
	chunks store.ChunkRepo
}

var _ Index = (*StoreIndex)(nil)

// NewStoreIndex wraps a ChunkRepo as an Index.
func NewStoreIndex(chunks store.ChunkRepo) *StoreIndex {
	return &StoreIndex{chunks: chunks}
}

func (s *StoreIndex) SimilarityQuery(ctx context.Context, query string, k int) ([]Passage, error) {
	chunks, err := s.chunks.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}
	out := make([]Passage, len(chunks))
	for i, c := range chunks {
		out[i] = Passage{Content: c.Content, Source: c.Source, Page: c.Page}
	}
	return out, nil
}
