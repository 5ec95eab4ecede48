package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docsearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docsearch.PageService = (*PageService)(nil)

// PageService implements docsearch.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// FindPageByPath retrieves a page by its canonical path.
func (s *PageService) FindPageByPath(ctx context.Context, path string) (*docsearch.Page, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, path, parent_page_id, checksum, meta, type, source
		FROM pages
		WHERE path = ?
	`, path)

	page, err := scanPage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "page not found")
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

// FindPages retrieves pages matching the filter, ordered by path.
func (s *PageService) FindPages(ctx context.Context, filter docsearch.PageFilter) ([]*docsearch.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, path, parent_page_id, checksum, meta, type, source FROM pages WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Path != nil {
		query.WriteString(" AND path = ?")
		args = append(args, *filter.Path)
	}

	query.WriteString(" ORDER BY path ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*docsearch.Page
	for rows.Next() {
		page, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// UpsertPage creates or replaces the page keyed by its path. The checksum
// is always cleared: a freshly upserted page is "indexing in progress"
// until UpdatePageChecksum commits it. The stored ID survives replacement
// so existing parent links keep pointing at the same row.
func (s *PageService) UpsertPage(ctx context.Context, page *docsearch.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	if page.Type == "" {
		page.Type = docsearch.PageTypeMarkdown
	}
	if page.Source == "" {
		page.Source = docsearch.PageSourceGuide
	}

	meta, err := marshalMeta(page.Meta)
	if err != nil {
		return fmt.Errorf("failed to encode meta: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (id, path, parent_page_id, checksum, meta, type, source)
		VALUES (?, ?, ?, NULL, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			parent_page_id = excluded.parent_page_id,
			checksum = NULL,
			meta = excluded.meta,
			type = excluded.type,
			source = excluded.source
	`, uuid.New().String(), page.Path, page.ParentPageID, meta, page.Type, page.Source)
	if err != nil {
		return err
	}

	// Read back the row ID: on conflict the original ID was kept.
	var id string
	if err := s.db.QueryRowContext(ctx, "SELECT id FROM pages WHERE path = ?", page.Path).Scan(&id); err != nil {
		return err
	}
	page.ID = id
	page.Checksum = nil

	return nil
}

// UpdatePageChecksum sets the page's checksum, marking it fully indexed.
func (s *PageService) UpdatePageChecksum(ctx context.Context, id string, checksum string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE pages SET checksum = ? WHERE id = ?", checksum, id)
	if err != nil {
		return err
	}
	return requireRow(result, "page")
}

// UpdatePageParent sets or clears the page's parent reference.
func (s *PageService) UpdatePageParent(ctx context.Context, id string, parentPageID *string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE pages SET parent_page_id = ? WHERE id = ?", parentPageID, id)
	if err != nil {
		return err
	}
	return requireRow(result, "page")
}

// DeletePage permanently removes a page. Its sections go with it.
func (s *PageService) DeletePage(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result, "page")
}

// scanPage scans one pages row using the provided scan function.
func scanPage(scan func(dest ...any) error) (*docsearch.Page, error) {
	var page docsearch.Page
	var parentID, checksum, meta sql.NullString

	if err := scan(&page.ID, &page.Path, &parentID, &checksum, &meta, &page.Type, &page.Source); err != nil {
		return nil, err
	}

	if parentID.Valid {
		page.ParentPageID = &parentID.String
	}
	if checksum.Valid {
		page.Checksum = &checksum.String
	}
	if meta.Valid && meta.String != "" {
		if err := json.Unmarshal([]byte(meta.String), &page.Meta); err != nil {
			return nil, fmt.Errorf("failed to parse meta: %w", err)
		}
	}

	return &page, nil
}

// marshalMeta encodes page metadata as JSON, or NULL when absent.
func marshalMeta(meta map[string]any) (any, error) {
	if len(meta) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
