package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.SectionService = (*SectionService)(nil)

// SectionService is a mock implementation of docsearch.SectionService.
type SectionService struct {
	CreateSectionFn          func(ctx context.Context, section *docsearch.Section) error
	UpdateSectionEmbeddingFn func(ctx context.Context, id string, embedding []float32) error
	FindSectionsByPageFn     func(ctx context.Context, pageID string) ([]*docsearch.Section, error)
	CountSectionsByPageFn    func(ctx context.Context, pageID string) (int, error)
	DeleteSectionsByPageFn   func(ctx context.Context, pageID string) error
	SearchSectionsFn         func(ctx context.Context, embedding []float32) ([]*docsearch.SearchResult, error)
}

func (s *SectionService) CreateSection(ctx context.Context, section *docsearch.Section) error {
	return s.CreateSectionFn(ctx, section)
}

func (s *SectionService) UpdateSectionEmbedding(ctx context.Context, id string, embedding []float32) error {
	return s.UpdateSectionEmbeddingFn(ctx, id, embedding)
}

func (s *SectionService) FindSectionsByPage(ctx context.Context, pageID string) ([]*docsearch.Section, error) {
	return s.FindSectionsByPageFn(ctx, pageID)
}

func (s *SectionService) CountSectionsByPage(ctx context.Context, pageID string) (int, error) {
	return s.CountSectionsByPageFn(ctx, pageID)
}

func (s *SectionService) DeleteSectionsByPage(ctx context.Context, pageID string) error {
	return s.DeleteSectionsByPageFn(ctx, pageID)
}

func (s *SectionService) SearchSections(ctx context.Context, embedding []float32) ([]*docsearch.SearchResult, error) {
	return s.SearchSectionsFn(ctx, embedding)
}
