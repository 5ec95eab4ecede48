package docsearch

import "context"

// EmbeddingDim is the dimensionality of section and query embeddings.
const EmbeddingDim = 1536

// Search tuning constants. Sections below the similarity floor are noise
// matches; sections below the content-length floor are near-duplicate
// short fragments (a bare heading line, for example).
const (
	SearchMinSimilarity    = 0.5
	SearchMinContentLength = 50
	SearchMaxResults       = 15
)

// Section represents one heading-delimited fragment of a page. Sections are
// the unit of embedding and retrieval. They are recreated from scratch on
// every re-index of their owning page, never mutated in place.
type Section struct {
	ID     string `json:"id"`
	PageID string `json:"pageId"`

	// Slug is a URL-fragment-safe identifier derived from the heading,
	// disambiguated within the page. Empty if the section has no heading.
	Slug string `json:"slug,omitempty"`

	// Heading is the plain-text heading, if the section has one.
	Heading string `json:"heading,omitempty"`

	// Content is the section's raw markdown, including the heading line.
	Content string `json:"content"`

	// TokenCount is the token count reported by the embedding provider.
	TokenCount int `json:"tokenCount"`

	// Embedding is nil until the vector has been generated and stored.
	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the section contains invalid fields.
func (s *Section) Validate() error {
	if s.PageID == "" {
		return Errorf(EINVALID, "section page ID required")
	}
	if s.Content == "" {
		return Errorf(EINVALID, "section content required")
	}
	return nil
}

// SectionService represents a service for managing sections and searching
// them by embedding similarity.
type SectionService interface {
	// CreateSection creates a new section row. The embedding is written
	// separately via UpdateSectionEmbedding.
	CreateSection(ctx context.Context, section *Section) error

	// UpdateSectionEmbedding stores the embedding vector for a section.
	// Returns ENOTFOUND if the section does not exist.
	UpdateSectionEmbedding(ctx context.Context, id string, embedding []float32) error

	// FindSectionsByPage retrieves a page's sections in creation order.
	FindSectionsByPage(ctx context.Context, pageID string) ([]*Section, error)

	// CountSectionsByPage returns the number of sections for a page.
	CountSectionsByPage(ctx context.Context, pageID string) (int, error)

	// DeleteSectionsByPage removes all sections for a page.
	DeleteSectionsByPage(ctx context.Context, pageID string) error

	// SearchSections ranks sections by cosine similarity to the query
	// embedding, applies the similarity and content-length floors, and
	// returns at most SearchMaxResults results in descending similarity
	// order, each joined to its owning page's path.
	SearchSections(ctx context.Context, embedding []float32) ([]*SearchResult, error)
}

// SearchResult represents one section matched by a similarity search.
type SearchResult struct {
	SectionID  string  `json:"sectionId"`
	PageID     string  `json:"pageId"`
	PagePath   string  `json:"pagePath"`
	Slug       string  `json:"slug,omitempty"`
	Heading    string  `json:"heading,omitempty"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// Searcher answers natural language queries with ranked sections.
type Searcher interface {
	// Search embeds the query text and returns matching sections ordered
	// by descending similarity. Returns EINVALID if query is empty.
	Search(ctx context.Context, query string) ([]*SearchResult, error)
}
