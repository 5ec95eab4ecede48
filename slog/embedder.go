// Package slog provides logging decorators for docsearch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingEmbedder implements docsearch.Embedder.
var _ docsearch.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with debug logging.
type LoggingEmbedder struct {
	next   docsearch.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next docsearch.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, text string) (emb *docsearch.Embedding, err error) {
	defer func(begin time.Time) {
		tokens := 0
		if emb != nil {
			tokens = emb.TokenCount
		}
		e.logger.Debug("embed",
			"chars", len(text),
			"tokens", tokens,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, text)
}
