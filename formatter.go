package docsearch

import (
	"fmt"
	"strings"
)

// FormatPages formats pages for display, one per line. Pages with a nil
// checksum are flagged as incomplete since they are due for re-indexing.
func FormatPages(pages []*Page) string {
	if len(pages) == 0 {
		return ""
	}

	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		state := "indexed"
		if page.Checksum == nil {
			state = "incomplete"
		}
		parts = append(parts, fmt.Sprintf("%s\t%s", page.Path, state))
	}

	return strings.Join(parts, "\n")
}
