package pg

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/itchan-dev/bbs/shared/domain"
	internal_errors "github.com/itchan-dev/bbs/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	var e *internal_errors.ErrorWithStatusCode
	require.True(t, errors.As(err, &e), "expected ErrorWithStatusCode, got %v", err)
	assert.Equal(t, http.StatusNotFound, e.StatusCode)
}

func TestCreateAndGetBoard(t *testing.T) {
	ctx := context.Background()
	author := uniqueName("author")

	created := mustCreateBoard(t, "Hello", author)
	assert.Positive(t, created.Id)
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
	assert.False(t, created.IsDeleted)

	got, err := storage.GetBoard(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, author, got.Author)
	assert.Equal(t, "hash", got.PasswordHash)

	_, err = storage.GetBoard(ctx, -1)
	requireNotFound(t, err)
}

func TestListBoards(t *testing.T) {
	ctx := context.Background()
	author := uniqueName("lister")
	var ids []domain.BoardId
	for i := 0; i < 5; i++ {
		ids = append(ids, mustCreateBoard(t, "board", author).Id)
	}
	filter := domain.BoardFilter{Author: &author}

	t.Run("newest first with total", func(t *testing.T) {
		boards, total, err := storage.ListBoards(ctx, filter, domain.Page{Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, boards, 2)
		assert.Equal(t, ids[4], boards[0].Id)
		assert.Equal(t, ids[3], boards[1].Id)
	})

	t.Run("last partial page", func(t *testing.T) {
		boards, total, err := storage.ListBoards(ctx, filter, domain.Page{Page: 3, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, boards, 1)
		assert.Equal(t, ids[0], boards[0].Id)
	})

	t.Run("page beyond end", func(t *testing.T) {
		boards, total, err := storage.ListBoards(ctx, filter, domain.Page{Page: 9, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Empty(t, boards)

		boards, total, err = storage.ListBoards(ctx, filter, domain.Page{Page: 1<<62 + 1, Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Empty(t, boards)
	})

	t.Run("unfiltered list includes them", func(t *testing.T) {
		_, total, err := storage.ListBoards(ctx, domain.BoardFilter{}, domain.Page{Page: 1, Limit: 1})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, 5)
	})
}

func TestSearchBoards(t *testing.T) {
	ctx := context.Background()
	prefix := uniqueName("Search")
	alice := mustCreateBoard(t, "a", prefix+"-alice")
	bob := mustCreateBoard(t, "b", prefix+"-bob")

	t.Run("author substring is case-sensitive", func(t *testing.T) {
		sub := prefix + "-ali"
		boards, total, err := storage.ListBoards(ctx, domain.BoardFilter{Author: &sub}, domain.Page{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, boards, 1)
		assert.Equal(t, alice.Id, boards[0].Id)

		upper := prefix + "-ALI"
		_, total, err = storage.ListBoards(ctx, domain.BoardFilter{Author: &upper}, domain.Page{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("id and author combine", func(t *testing.T) {
		boards, _, err := storage.ListBoards(ctx, domain.BoardFilter{Id: &bob.Id, Author: &prefix}, domain.Page{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.Equal(t, bob.Id, boards[0].Id)

		other := "nobody-" + prefix
		boards, _, err = storage.ListBoards(ctx, domain.BoardFilter{Id: &bob.Id, Author: &other}, domain.Page{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, boards)
	})
}

func TestUpdateBoard(t *testing.T) {
	ctx := context.Background()
	created := mustCreateBoard(t, "before", uniqueName("updater"))

	meta := created.BoardMetadata
	meta.Title = "after"
	updated, err := storage.UpdateBoard(ctx, meta)
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, created.Content, updated.Content)
	assert.Equal(t, created.Author, updated.Author)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

	meta.Id = -1
	_, err = storage.UpdateBoard(ctx, meta)
	requireNotFound(t, err)
}

func TestSoftDeleteBoard(t *testing.T) {
	ctx := context.Background()
	author := uniqueName("deleter")
	created := mustCreateBoard(t, "doomed", author)

	require.NoError(t, storage.SoftDeleteBoard(ctx, created.Id))

	_, err := storage.GetBoard(ctx, created.Id)
	requireNotFound(t, err)

	_, total, err := storage.ListBoards(ctx, domain.BoardFilter{Author: &author}, domain.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	_, total, err = storage.ListBoards(ctx, domain.BoardFilter{Id: &created.Id}, domain.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	meta := created.BoardMetadata
	meta.Title = "resurrect"
	_, err = storage.UpdateBoard(ctx, meta)
	requireNotFound(t, err)

	requireNotFound(t, storage.SoftDeleteBoard(ctx, created.Id))

	var persisted bool
	require.NoError(t, storage.db.QueryRow("SELECT is_deleted FROM boards WHERE id = $1", created.Id).Scan(&persisted))
	assert.True(t, persisted, "row must persist")
}
