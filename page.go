package docsearch

import "context"

// Page type and source discriminators. A single variant exists today; new
// document kinds get new constants rather than new types.
const (
	PageTypeMarkdown = "markdown"
	PageSourceGuide  = "guide"
)

// Page represents one indexed source document.
type Page struct {
	ID string `json:"id"`

	// Path is the canonical, URL-friendly identifier derived from the
	// source file path. Unique across all pages.
	Path string `json:"path"`

	// ParentPageID references the page built from the nearest ancestor
	// index document, if any. Non-owning: never cascades.
	ParentPageID *string `json:"parentPageId,omitempty"`

	// Checksum is the content hash of the last fully indexed version of
	// the source text. Nil means indexing is incomplete or never finished
	// and the page must be re-indexed on the next run.
	Checksum *string `json:"checksum,omitempty"`

	// Meta holds scalar key/value metadata extracted from the document's
	// meta declaration, if one exists.
	Meta map[string]any `json:"meta,omitempty"`

	Type   string `json:"type"`
	Source string `json:"source"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.Path == "" {
		return Errorf(EINVALID, "page path required")
	}
	return nil
}

// PageService represents a service for managing pages.
type PageService interface {
	// FindPageByPath retrieves a page by its canonical path.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByPath(ctx context.Context, path string) (*Page, error)

	// FindPages retrieves pages matching the filter, ordered by path.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)

	// UpsertPage creates or replaces the page keyed by its path and
	// clears its checksum, marking it as not yet fully indexed. The
	// stored ID is preserved on replace and written back to page.
	UpsertPage(ctx context.Context, page *Page) error

	// UpdatePageChecksum sets the page's checksum, marking it as fully
	// indexed. Returns ENOTFOUND if the page does not exist.
	UpdatePageChecksum(ctx context.Context, id string, checksum string) error

	// UpdatePageParent sets or clears the page's parent reference.
	// Returns ENOTFOUND if the page does not exist.
	UpdatePageParent(ctx context.Context, id string, parentPageID *string) error

	// DeletePage permanently removes a page and, by cascade, its sections.
	// Returns ENOTFOUND if the page does not exist.
	DeletePage(ctx context.Context, id string) error
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	ID   *string `json:"id"`
	Path *string `json:"path"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
