// Package search provides semantic retrieval over indexed sections.
package search

import (
	"context"

	"github.com/fwojciec/docsearch"
)

// Ensure Service implements docsearch.Searcher at compile time.
var _ docsearch.Searcher = (*Service)(nil)

// Service answers natural language queries by embedding the query text and
// ranking stored sections by similarity. It is a pure read path and may run
// concurrently with an indexing run.
type Service struct {
	Embedder docsearch.Embedder
	Sections docsearch.SectionService
}

// NewService creates a new Service.
func NewService(embedder docsearch.Embedder, sections docsearch.SectionService) *Service {
	return &Service{Embedder: embedder, Sections: sections}
}

// Search returns sections matching the query, ordered by descending
// similarity. An empty query is rejected before any provider call.
func (s *Service) Search(ctx context.Context, query string) ([]*docsearch.SearchResult, error) {
	if query == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "query required")
	}

	embedding, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	return s.Sections.SearchSections(ctx, embedding.Vector)
}
