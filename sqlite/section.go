package sqlite

import (
	"context"
	"sort"

	"github.com/fwojciec/docsearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docsearch.SectionService = (*SectionService)(nil)

// SectionService implements docsearch.SectionService using SQLite.
// Embeddings are stored as little-endian float32 blobs; similarity ranking
// scans candidate rows and computes cosine similarity in process, which is
// the vector operator this store offers.
type SectionService struct {
	db *DB
}

// NewSectionService creates a new SectionService.
func NewSectionService(db *DB) *SectionService {
	return &SectionService{db: db}
}

// CreateSection creates a new section row without an embedding. The vector
// is written separately via UpdateSectionEmbedding because it uses a
// different encoding than the scalar columns.
func (s *SectionService) CreateSection(ctx context.Context, section *docsearch.Section) error {
	if err := section.Validate(); err != nil {
		return err
	}

	section.ID = uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sections (id, page_id, slug, heading, content, token_count, embedding)
		VALUES (?, ?, ?, ?, ?, ?, NULL)
	`, section.ID, section.PageID, section.Slug, section.Heading, section.Content, section.TokenCount)

	return err
}

// UpdateSectionEmbedding stores the embedding vector for a section.
func (s *SectionService) UpdateSectionEmbedding(ctx context.Context, id string, embedding []float32) error {
	if len(embedding) != docsearch.EmbeddingDim {
		return docsearch.Errorf(docsearch.EINVALID, "embedding must have %d dimensions, got %d",
			docsearch.EmbeddingDim, len(embedding))
	}

	result, err := s.db.ExecContext(ctx, "UPDATE sections SET embedding = ? WHERE id = ?",
		encodeVector(embedding), id)
	if err != nil {
		return err
	}
	return requireRow(result, "section")
}

// FindSectionsByPage retrieves a page's sections in creation order.
func (s *SectionService) FindSectionsByPage(ctx context.Context, pageID string) ([]*docsearch.Section, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, page_id, slug, heading, content, token_count, embedding
		FROM sections
		WHERE page_id = ?
		ORDER BY rowid ASC
	`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*docsearch.Section
	for rows.Next() {
		var section docsearch.Section
		var blob []byte

		if err := rows.Scan(&section.ID, &section.PageID, &section.Slug, &section.Heading,
			&section.Content, &section.TokenCount, &blob); err != nil {
			return nil, err
		}

		if blob != nil {
			section.Embedding, err = decodeVector(blob)
			if err != nil {
				return nil, err
			}
		}

		sections = append(sections, &section)
	}

	return sections, rows.Err()
}

// CountSectionsByPage returns the number of sections for a page.
func (s *SectionService) CountSectionsByPage(ctx context.Context, pageID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sections WHERE page_id = ?", pageID).Scan(&count)
	return count, err
}

// DeleteSectionsByPage removes all sections for a page.
func (s *SectionService) DeleteSectionsByPage(ctx context.Context, pageID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sections WHERE page_id = ?", pageID)
	return err
}

// SearchSections ranks sections by cosine similarity to the query
// embedding. SQL pre-filters out unembedded rows and short fragments;
// similarity filtering, ordering, and the result cap happen over the
// decoded vectors.
func (s *SectionService) SearchSections(ctx context.Context, embedding []float32) ([]*docsearch.SearchResult, error) {
	if len(embedding) != docsearch.EmbeddingDim {
		return nil, docsearch.Errorf(docsearch.EINVALID, "embedding must have %d dimensions, got %d",
			docsearch.EmbeddingDim, len(embedding))
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.page_id, p.path, s.slug, s.heading, s.content, s.embedding
		FROM sections s
		JOIN pages p ON p.id = s.page_id
		WHERE s.embedding IS NOT NULL AND length(s.content) > ?
	`, docsearch.SearchMinContentLength)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*docsearch.SearchResult
	for rows.Next() {
		var result docsearch.SearchResult
		var blob []byte

		if err := rows.Scan(&result.SectionID, &result.PageID, &result.PagePath,
			&result.Slug, &result.Heading, &result.Content, &blob); err != nil {
			return nil, err
		}

		vector, err := decodeVector(blob)
		if err != nil {
			return nil, err
		}

		result.Similarity = cosineSimilarity(embedding, vector)
		if result.Similarity > docsearch.SearchMinSimilarity {
			results = append(results, &result)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > docsearch.SearchMaxResults {
		results = results[:docsearch.SearchMaxResults]
	}

	return results, nil
}
