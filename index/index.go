// Package index provides the incremental document-indexing pipeline.
// It coordinates walking the source tree, segmenting markdown, generating
// embeddings for changed content, and committing pages and sections to
// storage with per-document failure isolation.
package index

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/docsearch"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Indexer orchestrates one indexing run over a documentation tree.
type Indexer struct {
	Walker   docsearch.Walker
	Pages    docsearch.PageService
	Sections docsearch.SectionService
	Embedder docsearch.Embedder

	// Logger receives per-document failure diagnostics. Defaults to
	// slog.Default when nil.
	Logger *slog.Logger

	// Limiter throttles embedding calls. Nil means unlimited.
	Limiter *rate.Limiter

	// Concurrency is the number of documents processed at once.
	// Values below 1 mean sequential processing.
	Concurrency int

	// ReadFile loads a source file's raw bytes. Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// Result holds the outcome of an indexing run.
type Result struct {
	Discovered int
	Indexed    int
	Skipped    int
	Relinked   int
	Failed     int
}

// ProgressEvent reports progress during an indexing run.
type ProgressEvent struct {
	Type      ProgressType
	Path      string
	Completed int
	Total     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressIndexed
	ProgressSkipped
	ProgressRelinked
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting indexing progress.
type ProgressFunc func(event ProgressEvent)

// outcome classifies how a single document was handled.
type outcome int

const (
	outcomeIndexed outcome = iota
	outcomeSkipped
	outcomeRelinked
)

// IndexDir runs the pipeline once over the tree rooted at root. When refresh
// is true the checksum-based skip logic is bypassed and every document is
// re-indexed. A document's failure never aborts the run; it is logged,
// counted, and left with a nil checksum so the next run repairs it.
func (ix *Indexer) IndexDir(ctx context.Context, root string, refresh bool, progress ProgressFunc) (*Result, error) {
	docs, err := ix.Walker.Walk(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("document discovery: %w", err)
	}

	result := &Result{Discovered: len(docs)}
	total := len(docs)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := ix.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	// Documents share no mutable state except the store, and each touches
	// only its own page row, so they can be processed independently. The
	// all-or-nothing checksum commit happens inside processDocument.
	var mu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, doc := range docs {
		g.Go(func() error {
			out, err := ix.processDocument(gctx, root, doc, refresh)

			mu.Lock()
			defer mu.Unlock()
			completed++

			event := ProgressEvent{Path: doc.FilePath, Completed: completed, Total: total}
			if err != nil {
				result.Failed++
				event.Type = ProgressFailed
				event.Error = err
				ix.logger().Error("index document",
					"path", doc.FilePath,
					"err", err,
				)
			} else {
				switch out {
				case outcomeIndexed:
					result.Indexed++
					event.Type = ProgressIndexed
				case outcomeSkipped:
					result.Skipped++
					event.Type = ProgressSkipped
				case outcomeRelinked:
					result.Relinked++
					event.Type = ProgressRelinked
				}
			}
			if progress != nil {
				progress(event)
			}
			return nil
		})
	}
	_ = g.Wait()

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return result, nil
}

// processDocument handles one discovered document end to end. Document
// paths are relative to root, which keeps canonical page paths independent
// of how the root was spelled. Any error leaves the page's checksum nil,
// which marks it for full re-indexing on the next run.
func (ix *Indexer) processDocument(ctx context.Context, root string, doc docsearch.SourceDocument, refresh bool) (outcome, error) {
	raw, err := ix.readFile(filepath.Join(root, doc.FilePath))
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}

	seg, err := docsearch.Segment(string(raw))
	if err != nil {
		return 0, fmt.Errorf("segment: %w", err)
	}

	path := docsearch.FormatPath(doc.FilePath)
	parentPath := ""
	if doc.ParentFilePath != "" {
		parentPath = docsearch.FormatPath(doc.ParentFilePath)
	}

	page, err := ix.Pages.FindPageByPath(ctx, path)
	if err != nil && docsearch.ErrorCode(err) != docsearch.ENOTFOUND {
		return 0, fmt.Errorf("find page: %w", err)
	}

	// Unchanged content needs at most a parent-link patch.
	if !refresh && page != nil && page.Checksum != nil && *page.Checksum == seg.Checksum {
		parentID, err := ix.resolveParent(ctx, parentPath)
		if err != nil {
			return 0, fmt.Errorf("resolve parent: %w", err)
		}
		if !idEqual(page.ParentPageID, parentID) {
			if err := ix.Pages.UpdatePageParent(ctx, page.ID, parentID); err != nil {
				return 0, fmt.Errorf("update parent: %w", err)
			}
			return outcomeRelinked, nil
		}
		return outcomeSkipped, nil
	}

	// Changed, forced, or new: old sections go first so the page never
	// mixes generations.
	if page != nil {
		if err := ix.Sections.DeleteSectionsByPage(ctx, page.ID); err != nil {
			return 0, fmt.Errorf("delete sections: %w", err)
		}
	}

	parentID, err := ix.resolveParent(ctx, parentPath)
	if err != nil {
		return 0, fmt.Errorf("resolve parent: %w", err)
	}

	// The upsert clears the checksum: from here until the final checksum
	// write the page is marked "indexing in progress".
	upserted := &docsearch.Page{
		Path:         path,
		ParentPageID: parentID,
		Meta:         seg.Meta,
		Type:         docsearch.PageTypeMarkdown,
		Source:       docsearch.PageSourceGuide,
	}
	if err := ix.Pages.UpsertPage(ctx, upserted); err != nil {
		return 0, fmt.Errorf("upsert page: %w", err)
	}

	// Sections are processed strictly in document order because slug
	// disambiguation depends on it.
	for _, sec := range seg.Sections {
		input := sec.Content
		if sec.Heading != "" {
			input = sec.Heading + "\n\n" + sec.Content
		}

		if ix.Limiter != nil {
			if err := ix.Limiter.Wait(ctx); err != nil {
				return 0, err
			}
		}
		emb, err := ix.Embedder.Embed(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("embed %q: %w", sec.Slug, err)
		}

		section := &docsearch.Section{
			PageID:     upserted.ID,
			Slug:       sec.Slug,
			Heading:    sec.Heading,
			Content:    sec.Content,
			TokenCount: emb.TokenCount,
		}
		if err := ix.Sections.CreateSection(ctx, section); err != nil {
			return 0, fmt.Errorf("create section %q: %w", sec.Slug, err)
		}
		if err := ix.Sections.UpdateSectionEmbedding(ctx, section.ID, emb.Vector); err != nil {
			return 0, fmt.Errorf("store embedding %q: %w", sec.Slug, err)
		}
	}

	// The single operation that flips the page from "incomplete" to
	// "trustworthy". Everything above must have succeeded.
	if err := ix.Pages.UpdatePageChecksum(ctx, upserted.ID, seg.Checksum); err != nil {
		return 0, fmt.Errorf("commit checksum: %w", err)
	}

	return outcomeIndexed, nil
}

// resolveParent looks up the parent page by canonical path. A parent that
// has not been indexed yet resolves to nil rather than an error; the link
// is patched on a later run once the parent exists.
func (ix *Indexer) resolveParent(ctx context.Context, parentPath string) (*string, error) {
	if parentPath == "" {
		return nil, nil
	}
	parent, err := ix.Pages.FindPageByPath(ctx, parentPath)
	if err != nil {
		if docsearch.ErrorCode(err) == docsearch.ENOTFOUND {
			return nil, nil
		}
		return nil, err
	}
	return &parent.ID, nil
}

func (ix *Indexer) readFile(name string) ([]byte, error) {
	if ix.ReadFile != nil {
		return ix.ReadFile(name)
	}
	return os.ReadFile(name)
}

func (ix *Indexer) logger() *slog.Logger {
	if ix.Logger != nil {
		return ix.Logger
	}
	return slog.Default()
}

func idEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
