package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingSearcher implements docsearch.Searcher.
var _ docsearch.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with request logging.
type LoggingSearcher struct {
	next   docsearch.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next docsearch.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, query string) (results []*docsearch.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}
