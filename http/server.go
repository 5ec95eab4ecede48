// Package http exposes the query endpoint over HTTP.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fwojciec/docsearch"
)

// Server serves the search API. It is a thin layer over docsearch.Searcher:
// validation failures map to 400, everything else to a generic 500 so
// internals never leak to clients.
type Server struct {
	searcher docsearch.Searcher
	logger   *slog.Logger
	mux      *http.ServeMux
}

// NewServer creates a new Server.
func NewServer(searcher docsearch.Searcher, logger *slog.Logger) *Server {
	s := &Server{
		searcher: searcher,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /api/search", s.handleSearch)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// searchResponse is the success payload of the search endpoint.
type searchResponse struct {
	Results []*docsearch.SearchResult `json:"results"`
}

// errorResponse is the failure payload of the search endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "query parameter required")
		return
	}

	results, err := s.searcher.Search(r.Context(), query)
	if err != nil {
		if docsearch.ErrorCode(err) == docsearch.EINVALID {
			s.writeError(w, http.StatusBadRequest, docsearch.ErrorMessage(err))
			return
		}
		// Full details stay server-side.
		s.logger.Error("search request",
			"query", query,
			"err", err,
		)
		s.writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	if results == nil {
		results = []*docsearch.SearchResult{}
	}
	s.writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}
