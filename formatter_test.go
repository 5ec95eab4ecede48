package docsearch_test

import (
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/stretchr/testify/assert"
)

func TestFormatPages(t *testing.T) {
	t.Parallel()

	t.Run("flags pages without a checksum as incomplete", func(t *testing.T) {
		t.Parallel()

		checksum := "abc123"
		pages := []*docsearch.Page{
			{Path: "docs/guide", Checksum: &checksum},
			{Path: "docs/api"},
		}

		got := docsearch.FormatPages(pages)

		assert.Equal(t, "docs/guide\tindexed\ndocs/api\tincomplete", got)
	})

	t.Run("returns empty string for no pages", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, docsearch.FormatPages(nil))
	})
}
