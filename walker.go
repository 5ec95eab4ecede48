package docsearch

import "context"

// SourceDocument identifies one discovered source file.
type SourceDocument struct {
	// FilePath is the file's path relative to the walk root.
	FilePath string `json:"filePath"`

	// ParentFilePath is the path of the nearest ancestor index document,
	// if one exists in the traversal. Empty otherwise.
	ParentFilePath string `json:"parentFilePath,omitempty"`
}

// Walker enumerates source documents under a root directory.
// Implementations return documents sorted by file path so that runs are
// deterministic and logs reproducible.
type Walker interface {
	Walk(ctx context.Context, root string) ([]SourceDocument, error)
}
