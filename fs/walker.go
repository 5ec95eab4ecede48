// Package fs provides filesystem-based implementations for docsearch services.
package fs

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/docsearch"
)

// Ensure Walker implements docsearch.Walker at compile time.
var _ docsearch.Walker = (*Walker)(nil)

// Walker discovers markdown documents under a root directory. Hidden
// directories are skipped. Results are sorted by path so runs are
// deterministic.
type Walker struct {
	// Extensions lists the file extensions treated as documents.
	// Defaults to .md and .mdx.
	Extensions []string
}

// NewWalker creates a new Walker with default extensions.
func NewWalker() *Walker {
	return &Walker{Extensions: []string{".md", ".mdx"}}
}

// Walk enumerates documents under root. Paths are relative to root, so the
// same corpus yields the same documents however the root is spelled. Each
// document carries the path of its nearest ancestor index document, which
// the indexer turns into the page's parent link.
func (w *Walker) Walk(ctx context.Context, root string) ([]docsearch.SourceDocument, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if w.isDocument(d.Name()) {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)

	// Index documents act as parents for everything beneath their
	// directory, including index documents of subdirectories.
	indexByDir := make(map[string]string)
	for _, path := range paths {
		if isIndex(path) {
			indexByDir[dirOf(path)] = path
		}
	}

	docs := make([]docsearch.SourceDocument, 0, len(paths))
	for _, path := range paths {
		doc := docsearch.SourceDocument{FilePath: path}

		// An index document's parent lives in an ancestor directory;
		// any other document may be parented by its own directory's
		// index. The root directory is "", which may itself hold an
		// index document.
		dir := dirOf(path)
		if isIndex(path) {
			if dir == "" {
				docs = append(docs, doc)
				continue
			}
			dir = parentDir(dir)
		}
		for {
			if index, ok := indexByDir[dir]; ok {
				doc.ParentFilePath = index
				break
			}
			if dir == "" {
				break
			}
			dir = parentDir(dir)
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

func (w *Walker) isDocument(name string) bool {
	extensions := w.Extensions
	if len(extensions) == 0 {
		extensions = []string{".md", ".mdx"}
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// isIndex reports whether a path names an index document ("index" stem).
func isIndex(path string) bool {
	base := path[strings.LastIndex(path, "/")+1:]
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base == "index"
}

// dirOf returns the slash-separated directory of path, or "" at the top.
func dirOf(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	return path[:i]
}

// parentDir returns the parent of a slash-separated directory, or "" at the top.
func parentDir(dir string) string {
	i := strings.LastIndex(dir, "/")
	if i < 0 {
		return ""
	}
	return dir[:i]
}
