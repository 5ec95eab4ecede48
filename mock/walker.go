package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.Walker = (*Walker)(nil)

// Walker is a mock implementation of docsearch.Walker.
type Walker struct {
	WalkFn func(ctx context.Context, root string) ([]docsearch.SourceDocument, error)
}

func (w *Walker) Walk(ctx context.Context, root string) ([]docsearch.SourceDocument, error) {
	return w.WalkFn(ctx, root)
}
