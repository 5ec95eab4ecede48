// Package mock provides mock implementations of docsearch interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.PageService = (*PageService)(nil)

// PageService is a mock implementation of docsearch.PageService.
type PageService struct {
	FindPageByPathFn     func(ctx context.Context, path string) (*docsearch.Page, error)
	FindPagesFn          func(ctx context.Context, filter docsearch.PageFilter) ([]*docsearch.Page, error)
	UpsertPageFn         func(ctx context.Context, page *docsearch.Page) error
	UpdatePageChecksumFn func(ctx context.Context, id string, checksum string) error
	UpdatePageParentFn   func(ctx context.Context, id string, parentPageID *string) error
	DeletePageFn         func(ctx context.Context, id string) error
}

func (s *PageService) FindPageByPath(ctx context.Context, path string) (*docsearch.Page, error) {
	return s.FindPageByPathFn(ctx, path)
}

func (s *PageService) FindPages(ctx context.Context, filter docsearch.PageFilter) ([]*docsearch.Page, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) UpsertPage(ctx context.Context, page *docsearch.Page) error {
	return s.UpsertPageFn(ctx, page)
}

func (s *PageService) UpdatePageChecksum(ctx context.Context, id string, checksum string) error {
	return s.UpdatePageChecksumFn(ctx, id, checksum)
}

func (s *PageService) UpdatePageParent(ctx context.Context, id string, parentPageID *string) error {
	return s.UpdatePageParentFn(ctx, id, parentPageID)
}

func (s *PageService) DeletePage(ctx context.Context, id string) error {
	return s.DeletePageFn(ctx, id)
}
