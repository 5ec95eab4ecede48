package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/docsearch"
	dochttp "github.com/fwojciec/docsearch/http"
	"github.com/fwojciec/docsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(searcher docsearch.Searcher) *dochttp.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return dochttp.NewServer(searcher, logger)
}

func TestServer_Search(t *testing.T) {
	t.Parallel()

	t.Run("missing query returns 400 without searching", func(t *testing.T) {
		t.Parallel()

		searched := false
		server := newTestServer(&mock.Searcher{
			SearchFn: func(ctx context.Context, query string) ([]*docsearch.SearchResult, error) {
				searched = true
				return nil, nil
			},
		})

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, searched)
	})

	t.Run("internal failure returns generic 500", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(&mock.Searcher{
			SearchFn: func(ctx context.Context, query string) ([]*docsearch.SearchResult, error) {
				return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "gemini quota exceeded for key sk-123")
			},
		})

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?query=routing", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "sk-123", "internal details must not leak")
	})

	t.Run("success returns ranked results", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(&mock.Searcher{
			SearchFn: func(ctx context.Context, query string) ([]*docsearch.SearchResult, error) {
				return []*docsearch.SearchResult{
					{SectionID: "s1", PageID: "p1", PagePath: "docs/guide", Heading: "Guide", Content: "body", Similarity: 0.9},
				}, nil
			},
		})

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?query=guide", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var payload struct {
			Results []*docsearch.SearchResult `json:"results"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		require.Len(t, payload.Results, 1)
		assert.Equal(t, "docs/guide", payload.Results[0].PagePath)
		assert.InDelta(t, 0.9, payload.Results[0].Similarity, 1e-9)
	})

	t.Run("empty result set encodes as empty list", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(&mock.Searcher{
			SearchFn: func(ctx context.Context, query string) ([]*docsearch.SearchResult, error) {
				return nil, nil
			},
		})

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?query=nothing", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
	})
}
