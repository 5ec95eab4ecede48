package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docsearch.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) (*docsearch.Embedding, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) (*docsearch.Embedding, error) {
	return e.EmbedFn(ctx, text)
}
