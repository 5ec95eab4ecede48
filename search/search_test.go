package search_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/mock"
	"github.com/fwojciec/docsearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Search(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty query before embedding", func(t *testing.T) {
		t.Parallel()

		embedCalled := false
		svc := search.NewService(
			&mock.Embedder{
				EmbedFn: func(ctx context.Context, text string) (*docsearch.Embedding, error) {
					embedCalled = true
					return nil, nil
				},
			},
			&mock.SectionService{},
		)

		_, err := svc.Search(context.Background(), "")

		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
		assert.False(t, embedCalled, "provider must not be called for an empty query")
	})

	t.Run("embeds the query and returns ranked sections", func(t *testing.T) {
		t.Parallel()

		vector := make([]float32, docsearch.EmbeddingDim)
		vector[0] = 1

		want := []*docsearch.SearchResult{
			{SectionID: "s1", PagePath: "docs/guide", Similarity: 0.9},
			{SectionID: "s2", PagePath: "docs/api", Similarity: 0.6},
		}

		var embedded string
		var searched []float32
		svc := search.NewService(
			&mock.Embedder{
				EmbedFn: func(ctx context.Context, text string) (*docsearch.Embedding, error) {
					embedded = text
					return &docsearch.Embedding{Vector: vector, TokenCount: 3}, nil
				},
			},
			&mock.SectionService{
				SearchSectionsFn: func(ctx context.Context, embedding []float32) ([]*docsearch.SearchResult, error) {
					searched = embedding
					return want, nil
				},
			},
		)

		got, err := svc.Search(context.Background(), "how do parallel routes work")
		require.NoError(t, err)

		assert.Equal(t, "how do parallel routes work", embedded)
		assert.Equal(t, vector, searched)
		assert.Equal(t, want, got)
	})

	t.Run("propagates provider failure", func(t *testing.T) {
		t.Parallel()

		svc := search.NewService(
			&mock.Embedder{
				EmbedFn: func(ctx context.Context, text string) (*docsearch.Embedding, error) {
					return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "quota exceeded")
				},
			},
			&mock.SectionService{},
		)

		_, err := svc.Search(context.Background(), "anything")

		assert.Equal(t, docsearch.EUNAVAILABLE, docsearch.ErrorCode(err))
	})
}
