package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageService_UpsertPage(t *testing.T) {
	t.Parallel()

	t.Run("creates a page with a cleared checksum", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		svc := sqlite.NewPageService(db)
		ctx := context.Background()

		page := &docsearch.Page{
			Path: "docs/guide",
			Meta: map[string]any{"title": "Guide", "position": float64(3)},
		}
		require.NoError(t, svc.UpsertPage(ctx, page))
		require.NotEmpty(t, page.ID)
		assert.Nil(t, page.Checksum)

		got, err := svc.FindPageByPath(ctx, "docs/guide")
		require.NoError(t, err)
		assert.Equal(t, page.ID, got.ID)
		assert.Nil(t, got.Checksum)
		assert.Equal(t, docsearch.PageTypeMarkdown, got.Type)
		assert.Equal(t, docsearch.PageSourceGuide, got.Source)
		assert.Equal(t, "Guide", got.Meta["title"])
	})

	t.Run("replacement keeps the ID and clears the checksum", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		svc := sqlite.NewPageService(db)
		ctx := context.Background()

		page := MustCreatePage(t, db, "docs/guide")

		// The committed checksum must not survive a re-upsert.
		again := &docsearch.Page{Path: "docs/guide", Meta: map[string]any{"title": "Updated"}}
		require.NoError(t, svc.UpsertPage(ctx, again))

		assert.Equal(t, page.ID, again.ID)

		got, err := svc.FindPageByPath(ctx, "docs/guide")
		require.NoError(t, err)
		assert.Nil(t, got.Checksum)
		assert.Equal(t, "Updated", got.Meta["title"])
	})

	t.Run("rejects a missing path", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		svc := sqlite.NewPageService(db)

		err := svc.UpsertPage(context.Background(), &docsearch.Page{})
		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})
}

func TestPageService_FindPageByPath(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		svc := sqlite.NewPageService(db)

		_, err := svc.FindPageByPath(context.Background(), "docs/nope")
		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
	})
}

func TestPageService_FindPages(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	svc := sqlite.NewPageService(db)
	ctx := context.Background()

	MustCreatePage(t, db, "docs/b")
	MustCreatePage(t, db, "docs/a")
	MustCreatePage(t, db, "docs/c")

	t.Run("ordered by path", func(t *testing.T) {
		pages, err := svc.FindPages(ctx, docsearch.PageFilter{})
		require.NoError(t, err)
		require.Len(t, pages, 3)
		assert.Equal(t, "docs/a", pages[0].Path)
		assert.Equal(t, "docs/b", pages[1].Path)
		assert.Equal(t, "docs/c", pages[2].Path)
	})

	t.Run("filter by path", func(t *testing.T) {
		path := "docs/b"
		pages, err := svc.FindPages(ctx, docsearch.PageFilter{Path: &path})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "docs/b", pages[0].Path)
	})

	t.Run("limit and offset", func(t *testing.T) {
		pages, err := svc.FindPages(ctx, docsearch.PageFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "docs/b", pages[0].Path)
	})
}

func TestPageService_UpdatePageChecksum(t *testing.T) {
	t.Parallel()

	t.Run("commits the page", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		svc := sqlite.NewPageService(db)
		ctx := context.Background()

		page := &docsearch.Page{Path: "docs/guide"}
		require.NoError(t, svc.UpsertPage(ctx, page))
		require.NoError(t, svc.UpdatePageChecksum(ctx, page.ID, "cafebabe"))

		got, err := svc.FindPageByPath(ctx, "docs/guide")
		require.NoError(t, err)
		require.NotNil(t, got.Checksum)
		assert.Equal(t, "cafebabe", *got.Checksum)
	})

	t.Run("unknown page", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		svc := sqlite.NewPageService(db)

		err := svc.UpdatePageChecksum(context.Background(), "no-such-id", "cafebabe")
		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
	})
}

func TestPageService_UpdatePageParent(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	svc := sqlite.NewPageService(db)
	ctx := context.Background()

	parent := MustCreatePage(t, db, "docs")
	child := MustCreatePage(t, db, "docs/guide")

	require.NoError(t, svc.UpdatePageParent(ctx, child.ID, &parent.ID))

	got, err := svc.FindPageByPath(ctx, "docs/guide")
	require.NoError(t, err)
	require.NotNil(t, got.ParentPageID)
	assert.Equal(t, parent.ID, *got.ParentPageID)

	// Clearing the link stores NULL.
	require.NoError(t, svc.UpdatePageParent(ctx, child.ID, nil))

	got, err = svc.FindPageByPath(ctx, "docs/guide")
	require.NoError(t, err)
	assert.Nil(t, got.ParentPageID)
}

func TestPageService_DeletePage(t *testing.T) {
	t.Parallel()

	t.Run("cascades to sections and nils child links", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		pages := sqlite.NewPageService(db)
		sections := sqlite.NewSectionService(db)
		ctx := context.Background()

		parent := MustCreatePage(t, db, "docs")
		child := MustCreatePage(t, db, "docs/guide")
		require.NoError(t, pages.UpdatePageParent(ctx, child.ID, &parent.ID))

		section := &docsearch.Section{PageID: parent.ID, Content: "Body."}
		require.NoError(t, sections.CreateSection(ctx, section))

		require.NoError(t, pages.DeletePage(ctx, parent.ID))

		count, err := sections.CountSectionsByPage(ctx, parent.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		got, err := pages.FindPageByPath(ctx, "docs/guide")
		require.NoError(t, err)
		assert.Nil(t, got.ParentPageID)
	})

	t.Run("unknown page", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		svc := sqlite.NewPageService(db)

		err := svc.DeletePage(context.Background(), "no-such-id")
		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
	})
}
